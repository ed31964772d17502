package types

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		kind string
	}{
		{"validation", fmt.Errorf("bad: %w", ErrValidation), http.StatusBadRequest, "validation"},
		{"unauthorized", fmt.Errorf("nope: %w", ErrUnauthorized), http.StatusForbidden, "authorization"},
		{"not found", fmt.Errorf("gone: %w", ErrNotFound), http.StatusNotFound, "not_found"},
		{"conflict", fmt.Errorf("twice: %w", ErrConflict), http.StatusConflict, "conflict"},
		{"store", fmt.Errorf("down: %w", ErrStoreUnavailable), http.StatusInternalServerError, "store.unavailable"},
		{"other", errors.New("boom"), http.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ce := Classify(tt.err)
			assert.Equal(t, tt.code, ce.Code)
			assert.Equal(t, tt.kind, ce.Type)
			assert.ErrorIs(t, ce, tt.err)
		})
	}
}

func TestClassifyKeepsCustomError(t *testing.T) {
	ve := NewValidationError(map[string]string{"title": "is required"})
	wrapped := fmt.Errorf("create: %w", ve)

	ce := Classify(wrapped)
	assert.Same(t, ve, ce)
	assert.Equal(t, "is required", ce.Fields["title"])
	assert.ErrorIs(t, wrapped, ErrValidation)
}

func TestFromStore(t *testing.T) {
	assert.Nil(t, FromStore(nil))
	assert.ErrorIs(t, FromStore(gorm.ErrRecordNotFound), ErrNotFound)
	assert.ErrorIs(t, FromStore(gorm.ErrDuplicatedKey), ErrConflict)
	assert.ErrorIs(t, FromStore(context.DeadlineExceeded), ErrStoreUnavailable)
	assert.ErrorIs(t, FromStore(context.Canceled), ErrStoreUnavailable)
	assert.ErrorIs(t, FromStore(driver.ErrBadConn), ErrStoreUnavailable)

	kinded := fmt.Errorf("already: %w", ErrConflict)
	assert.Same(t, kinded, FromStore(kinded))

	plain := errors.New("syntax error")
	assert.Same(t, plain, FromStore(plain))
}

func TestFlexInt(t *testing.T) {
	var v struct {
		A FlexInt `json:"a"`
		B FlexInt `json:"b"`
		C FlexInt `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 7, "b": " 12 ", "c": ""}`), &v))
	assert.Equal(t, 7, v.A.Int())
	assert.Equal(t, 12, v.B.Int())
	assert.Equal(t, 0, v.C.Int())

	assert.Error(t, json.Unmarshal([]byte(`{"a": "seven"}`), &v))
	assert.Error(t, json.Unmarshal([]byte(`{"a": true}`), &v))

	out, err := json.Marshal(FlexInt(3))
	require.NoError(t, err)
	assert.Equal(t, "3", string(out))
}

func TestFlexStrings(t *testing.T) {
	var v struct {
		Tags FlexStrings `json:"tags"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"tags": ["go", " go ", "", "web"]}`), &v))
	assert.Equal(t, FlexStrings{"go", "web"}, v.Tags)

	v.Tags = nil
	require.NoError(t, json.Unmarshal([]byte(`{"tags": "go, web,,go"}`), &v))
	assert.Equal(t, FlexStrings{"go", "web"}, v.Tags)

	var f FlexStrings
	require.NoError(t, f.UnmarshalText([]byte(`["a","b"]`)))
	assert.Equal(t, []string{"a", "b"}, f.Slice())

	require.NoError(t, f.UnmarshalText([]byte("x,y")))
	assert.Equal(t, []string{"x", "y"}, f.Slice())

	require.NoError(t, f.UnmarshalText(nil))
	assert.Empty(t, f)
}
