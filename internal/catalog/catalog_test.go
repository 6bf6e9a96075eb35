package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCatalog(t *testing.T) {
	ctx := context.Background()
	memory := NewMemoryCatalog()

	courses := memory.Courses(ctx)
	require.Len(t, courses, 8)
	assert.Equal(t, "Mathématiques", courses[0].Title)
	assert.Len(t, courses[0].Lessons, 8)

	course, ok := memory.Course(ctx, "3")
	require.True(t, ok)
	assert.Equal(t, "Chimie", course.Title)

	_, ok = memory.Course(ctx, "999")
	assert.False(t, ok)

	books := memory.Books(ctx)
	require.Len(t, books, 6)

	book, ok := memory.Book(ctx, "b2")
	require.True(t, ok)
	assert.Equal(t, "Camara Laye", book.Author)

	_, ok = memory.Book(ctx, "zzz")
	assert.False(t, ok)
}
