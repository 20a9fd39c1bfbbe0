package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTagSet_Normalizes(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want TagSet
	}{
		{name: "sorted and deduplicated", in: []string{"b", "a", "b"}, want: TagSet{"a", "b"}},
		{name: "empty labels dropped", in: []string{"", "  ", "x"}, want: TagSet{"x"}},
		{name: "whitespace trimmed", in: []string{" inbox "}, want: TagSet{"inbox"}},
		{name: "nothing", in: nil, want: TagSet{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewTagSet(tt.in...))
		})
	}
}

func TestTagSet_Equal(t *testing.T) {
	assert.True(t, NewTagSet("a", "b").Equal(NewTagSet("b", "a")))
	assert.False(t, NewTagSet("a").Equal(NewTagSet("a", "b")))
	assert.False(t, NewTagSet("a").Equal(NewTagSet("b")))
	assert.True(t, NewTagSet().Equal(TagSet{}))
}

func TestCursor(t *testing.T) {
	assert.True(t, Cursor("").IsZero())
	assert.False(t, Cursor("9001").IsZero())
	assert.Equal(t, "9001", Cursor("9001").String())
}

func TestHumanSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0"},
		{842, "842"},
		{1200, "1.2K"},
		{3400000, "3.4M"},
		{7100000000, "7.1G"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HumanSize(tt.size))
	}
}
