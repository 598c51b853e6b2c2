package malloc

import "errors"
import "testing"

import "github.com/IDWMaster/GC/api"
import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

func TestSpaceMap(t *testing.T) {
	space := NewSpace()
	r1 := space.Map("r1", 100)
	r2 := space.Map("r2", Pagesize)
	r3 := space.Map("r3", 8)

	require.Equal(t, Spacebase, r1.Base())
	assert.Equal(t, int64(104), r1.Size(), "size rounded up to alignment")
	assert.Equal(t, int64(0), int64(r2.Base())%Pagesize)
	assert.True(t, r2.Base() > r1.Limit())
	assert.True(t, r3.Base() > r2.Limit()+api.Addr(Pagesize-1))
	assert.Equal(t, 3, space.Regions())
	assert.Equal(t, int64(104+Pagesize+8), space.Mapped())

	assert.Equal(t, r1, space.Region(r1.Base()))
	assert.Equal(t, r1, space.Region(r1.Limit()-1))
	assert.Nil(t, space.Region(r1.Limit()))
	assert.Equal(t, r2, space.Region(r2.Base().Add(64)))
	assert.Equal(t, r3, space.Region(r3.Base()))
	assert.Nil(t, space.Region(api.Nil))
	assert.Nil(t, space.Region(r3.Limit()))

	space.Unmap(r2)
	assert.Nil(t, space.Region(r2.Base()))
	assert.Equal(t, r3, space.Region(r3.Base()))
	assert.Equal(t, 2, space.Regions())
	assert.Panics(t, func() { space.Unmap(r2) })
}

func TestSpaceLoadStore(t *testing.T) {
	space := NewSpace()
	r1 := space.Map("r1", 64)
	r2 := space.Map("r2", 64)

	space.Store(r1.Addr(2), r2.Addr(0))
	require.Equal(t, r2.Addr(0), space.Load(r1.Addr(2)))
	require.Equal(t, r2.Addr(0), r1.Word(r1.Addr(2)))

	func() {
		defer func() {
			r := recover()
			require.NotNil(t, r)
			err, ok := r.(error)
			require.True(t, ok)
			assert.True(t, errors.Is(err, api.ErrorUnmapped))
		}()
		space.Load(r2.Limit().Add(8))
	}()
	assert.Panics(t, func() { space.Store(api.Nil, 1) })
}
