package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func ids(es entries) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.ID
	}
	return out
}

func TestChronologicalSetOrdersByDateThenID(t *testing.T) {
	s := newChronologicalSet()
	s.insert(&Entry{ID: "c", PublishDate: day("2023-06-01")})
	s.insert(&Entry{ID: "b", PublishDate: day("2023-01-01")})
	s.insert(&Entry{ID: "a", PublishDate: day("2023-01-01")})
	s.insert(&Entry{ID: "d", PublishDate: day("2022-01-01")})

	assert.Equal(t, []string{"d", "a", "b", "c"}, ids(s.Ascending()))
	assert.Equal(t, []string{"c", "b", "a", "d"}, ids(s.Descending()))
}

func TestEntrySetInsertIsIdempotent(t *testing.T) {
	s := newMemberSet(false)
	e := &Entry{ID: "a", EntryURL: "2023/01/a.html", PublishDate: day("2023-01-01")}
	require.True(t, s.insert(e))
	require.False(t, s.insert(e))
	assert.Equal(t, 1, s.Len())
	assert.True(t, s.contains(e))
}

func TestMemberSetTieBreaksOnURL(t *testing.T) {
	s := newMemberSet(true)
	s.insert(&Entry{ID: "1", EntryURL: "b.html", PublishDate: day("2023-01-01")})
	s.insert(&Entry{ID: "2", EntryURL: "a.html", PublishDate: day("2023-01-01")})
	s.insert(&Entry{ID: "3", EntryURL: "c.html", PublishDate: day("2024-01-01")})

	assert.Equal(t, []string{"2", "1", "3"}, ids(s.Ascending()))
	assert.Equal(t, []string{"3", "1", "2"}, ids(s.Ordered()))
}

func TestEntrySetNewest(t *testing.T) {
	s := newChronologicalSet()
	for i, d := range []string{"2020-01-01", "2021-01-01", "2022-01-01"} {
		s.insert(&Entry{ID: string(rune('a' + i)), PublishDate: day(d)})
	}
	assert.Equal(t, []string{"c", "b"}, ids(s.newest(2)))
	assert.Equal(t, []string{"c", "b", "a"}, ids(s.newest(10)))
}
