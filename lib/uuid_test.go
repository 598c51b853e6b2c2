package lib

import "fmt"
import "testing"

func TestNewuuid(t *testing.T) {
	for i := 0; i < 128; i += 2 {
		if uuid, err := Newuuid(make([]byte, i)); err != nil {
			t.Error(err)
		} else if len(uuid) != i {
			t.Errorf("expected %v, got %v", i, len(uuid))
		}
	}
	// uuids are unique
	ref := map[string]bool{}
	for i := 0; i < 100000; i++ {
		uuid, err := Newuuid(make([]byte, 8))
		if err != nil {
			t.Fatal(err)
		} else if ref[string(uuid)] {
			t.Errorf("%v is not unique, already generated", uuid)
		}
		ref[string(uuid)] = true
	}
	if _, err := Newuuid(make([]byte, 7)); err != ErrorUuidInvalidSize {
		t.Errorf("expected %v, got %v", ErrorUuidInvalidSize, err)
	} else if _, err := Allocuuid(3); err != ErrorUuidInvalidSize {
		t.Errorf("expected %v, got %v", ErrorUuidInvalidSize, err)
	}
}

func TestUuidString(t *testing.T) {
	uuid := Uuid{0x12, 0x23, 0x34, 0x45, 0x56, 0x67, 0x78, 0x89}
	if ref, s := "1223344556677889", uuid.String(); ref != s {
		t.Errorf("expected %v, got %v", ref, s)
	}

	for i := 0; i < 128; i += 2 {
		uuid, err := Allocuuid(i)
		if err != nil {
			t.Fatal(err)
		}
		ref := fmt.Sprintf("%x", []byte(uuid))
		if s := uuid.String(); ref != s {
			t.Errorf("expected %v, got %v", ref, s)
		}
	}
}

func BenchmarkNewuuid(b *testing.B) {
	buf := Uuid(make([]byte, 16))
	for i := 0; i < b.N; i++ {
		Newuuid(buf)
	}
}

func BenchmarkUuidString(b *testing.B) {
	uuid, _ := Allocuuid(16)
	for i := 0; i < b.N; i++ {
		_ = uuid.String()
	}
}
