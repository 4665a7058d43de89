package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTripCatalog() []Record {
	return []Record{
		{"Model": "15 Pro", "Memory": "256GB", "Color": "Black", "SIM": "eSIM", "Price": "999"},
		{"Model": "15 Pro", "Memory": "512GB", "Color": "Black", "SIM": "eSIM", "Price": "1199"},
	}
}

func TestSessionRoundTrip(t *testing.T) {
	catalog := roundTripCatalog()
	s := NewSession("42", "iPhone", DefaultSchema)
	assert.Equal(t, StateIdle, s.State)

	s.Start()
	assert.Equal(t, StateActive, s.State)
	assert.Equal(t, 0, s.Stage)

	steps := []struct {
		wantAttr    string
		wantOptions []string
		choose      string
	}{
		{"Model", []string{"15 Pro"}, "15 Pro"},
		{"Memory", []string{"256GB", "512GB"}, "256GB"},
		{"Color", []string{"Black"}, "Black"},
		{"SIM", []string{"eSIM"}, "eSIM"},
	}

	for i, step := range steps {
		attr, ok := s.CurrentAttribute()
		require.True(t, ok)
		assert.Equal(t, step.wantAttr, attr)

		options, err := s.Options(catalog)
		require.NoError(t, err)
		assert.Equal(t, step.wantOptions, options)

		item, err := s.Choose(catalog, step.choose)
		require.NoError(t, err)
		if i < len(steps)-1 {
			assert.Nil(t, item)
			assert.Equal(t, i+1, s.Stage)
		} else {
			require.NotNil(t, item)
			assert.Equal(t, StateComplete, s.State)
			assert.Equal(t, "999", item.Price)
			assert.Equal(t, 1, item.Matches)
		}
	}
}

// The filter key set must always equal the schema prefix up to the current
// stage.
func TestSessionStageOrderInvariant(t *testing.T) {
	catalog := roundTripCatalog()
	s := NewSession("42", "iPhone", DefaultSchema)
	s.Start()

	for s.State == StateActive {
		assert.Len(t, s.Filter, s.Stage)
		for _, attr := range s.Schema[:s.Stage] {
			_, ok := s.Filter[attr]
			assert.True(t, ok, "attribute %s should be set", attr)
		}
		for _, attr := range s.Schema[s.Stage:] {
			_, ok := s.Filter[attr]
			assert.False(t, ok, "attribute %s set too early", attr)
		}

		options, err := s.Options(catalog)
		require.NoError(t, err)
		_, err = s.Choose(catalog, options[0])
		require.NoError(t, err)
	}
}

func TestSessionInvalidChoice(t *testing.T) {
	catalog := roundTripCatalog()
	s := NewSession("42", "iPhone", DefaultSchema)
	s.Start()

	_, err := s.Choose(catalog, "15 Pro")
	require.NoError(t, err)

	// "999GB" is not among ["256GB","512GB"]: rejected, session unmoved.
	item, err := s.Choose(catalog, "999GB")
	assert.ErrorIs(t, err, ErrInvalidChoice)
	assert.Nil(t, item)
	assert.Equal(t, StateActive, s.State)
	assert.Equal(t, 1, s.Stage)
	assert.Equal(t, Filter{"Model": "15 Pro"}, s.Filter)
}

// A value absent from the stage's available set is rejected before the
// resolver can ever see it.
func TestSessionRejectsUnknownFinalValue(t *testing.T) {
	catalog := roundTripCatalog()
	s := NewSession("42", "iPhone", DefaultSchema)
	s.Start()

	for _, v := range []string{"15 Pro", "512GB", "Black"} {
		_, err := s.Choose(catalog, v)
		require.NoError(t, err)
	}

	_, err := s.Choose(catalog, "SIM+eSIM")
	assert.ErrorIs(t, err, ErrInvalidChoice)
	assert.Equal(t, StateActive, s.State)
	assert.Equal(t, 3, s.Stage)
}

func TestSessionEmptyCatalog(t *testing.T) {
	s := NewSession("42", "iPhone", DefaultSchema)
	s.Start()

	_, err := s.Options([]Record{})
	assert.ErrorIs(t, err, ErrNoOptions)
}

func TestSessionResetIdempotent(t *testing.T) {
	catalog := roundTripCatalog()
	s := NewSession("42", "iPhone", DefaultSchema)
	s.Start()
	_, err := s.Choose(catalog, "15 Pro")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		s.Reset()
		assert.Equal(t, StateIdle, s.State)
		assert.Empty(t, s.Filter)
		assert.Equal(t, 0, s.Stage)
	}

	_, ok := s.CurrentAttribute()
	assert.False(t, ok)
	_, err = s.Options(catalog)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSessionRestartDiscardsProgress(t *testing.T) {
	catalog := roundTripCatalog()
	s := NewSession("42", "iPhone", DefaultSchema)
	s.Start()
	_, err := s.Choose(catalog, "15 Pro")
	require.NoError(t, err)

	s.Start()
	assert.Equal(t, 0, s.Stage)
	assert.Empty(t, s.Filter)
}

func TestResolve(t *testing.T) {
	catalog := roundTripCatalog()

	t.Run("first match wins", func(t *testing.T) {
		item, err := Resolve(catalog, Filter{"Model": "15 Pro", "Color": "Black"})
		require.NoError(t, err)
		assert.Equal(t, "999", item.Price)
		assert.Equal(t, 2, item.Matches)
	})

	t.Run("not found", func(t *testing.T) {
		item, err := Resolve(catalog, Filter{"Model": "14"})
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, item)
	})

	t.Run("filter snapshot is independent", func(t *testing.T) {
		f := Filter{"Model": "15 Pro"}
		item, err := Resolve(catalog, f)
		require.NoError(t, err)

		f["Model"] = "mutated"
		assert.Equal(t, "15 Pro", item.Filter["Model"])
	})
}
