package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/arthur-debert/bioreport/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type extractor interface {
	Name() string
}

type namedExtractor struct {
	name string
}

func (e *namedExtractor) Name() string { return e.name }

func TestRegister(t *testing.T) {
	reg := New[extractor]("parser")

	t.Run("register valid item", func(t *testing.T) {
		require.NoError(t, reg.Register("fastp", &namedExtractor{name: "fastp"}))
		assert.Equal(t, 1, reg.Len())
	})

	t.Run("register with empty name", func(t *testing.T) {
		err := reg.Register("", &namedExtractor{})
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput), "got %v", err)
	})

	t.Run("register duplicate", func(t *testing.T) {
		err := reg.Register("fastp", &namedExtractor{name: "other"})
		assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists), "got %v", err)
	})
}

func TestFreeze(t *testing.T) {
	reg := New[extractor]("parser")
	require.NoError(t, reg.Register("bowtie2", &namedExtractor{name: "bowtie2"}))

	assert.False(t, reg.Frozen())
	reg.Freeze()
	assert.True(t, reg.Frozen())

	err := reg.Register("bismark", &namedExtractor{name: "bismark"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInternal), "got %v", err)
	assert.False(t, reg.Has("bismark"))

	got, err := reg.Get("bowtie2")
	require.NoError(t, err)
	assert.Equal(t, "bowtie2", got.Name())
}

func TestGet(t *testing.T) {
	reg := New[extractor]("parser")
	_ = reg.Register("bismark", &namedExtractor{name: "bismark"})

	got, err := reg.Get("bismark")
	require.NoError(t, err)
	assert.Equal(t, "bismark", got.Name())

	_, err = reg.Get("nonexistent")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound), "got %v", err)
	assert.Contains(t, err.Error(), `no parser registered as "nonexistent"`)
	assert.Equal(t, []string{"bismark"}, errors.GetErrorDetails(err)["registered"])
}

func TestKind(t *testing.T) {
	assert.Equal(t, "parser", New[int]("parser").Kind())
	assert.Equal(t, "item", New[int]("").Kind())

	err := New[int]("").Register("", 1)
	assert.Contains(t, err.Error(), "item name cannot be empty")
}

func TestList(t *testing.T) {
	reg := New[int]("")
	for i, name := range []string{"charlie", "alpha", "bravo"} {
		_ = reg.Register(name, i)
	}

	assert.Equal(t, []string{"alpha", "bravo", "charlie"}, reg.Names())
}

func TestHas(t *testing.T) {
	reg := New[int]("")
	_ = reg.Register("item1", 1)

	tests := []struct {
		name     string
		itemName string
		want     bool
	}{
		{"existing item", "item1", true},
		{"non-existing item", "item2", false},
		{"empty name", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reg.Has(tt.itemName))
		})
	}
}

func TestConcurrency(t *testing.T) {
	reg := New[int]("")
	const goroutines = 10
	const itemsPerGoroutine = 100

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func(goroutineID int) {
			defer wg.Done()
			for i := 0; i < itemsPerGoroutine; i++ {
				if err := reg.Register(fmt.Sprintf("g%d_item%d", goroutineID, i), i); err != nil {
					t.Errorf("concurrent Register() failed: %v", err)
				}
			}
		}(g)
	}
	wg.Wait()

	assert.Equal(t, goroutines*itemsPerGoroutine, reg.Len())

	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func(goroutineID int) {
			defer wg.Done()
			for i := 0; i < itemsPerGoroutine; i++ {
				if _, err := reg.Get(fmt.Sprintf("g%d_item%d", goroutineID, i)); err != nil {
					t.Errorf("concurrent Get() failed: %v", err)
				}
			}
		}(g)
	}
	wg.Wait()
}

func ExampleRegistry() {
	reg := New[func() string]("submodule")

	_ = reg.Register("json", func() string { return "fastp json" })
	_ = reg.Register("html", func() string { return "fastp html" })

	fmt.Println("Registered:", reg.Names())

	if fn, err := reg.Get("json"); err == nil {
		fmt.Println(fn())
	}

	// Output:
	// Registered: [html json]
	// fastp json
}
