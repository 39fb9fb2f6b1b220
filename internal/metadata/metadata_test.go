package metadata

import (
	"bytes"
	"encoding/json/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/traitmint/internal/combination"
	domainerrors "github.com/listenupapp/traitmint/internal/errors"
	"github.com/listenupapp/traitmint/internal/logger"
	"github.com/listenupapp/traitmint/internal/media/images"
)

var defaultTemplate = Template{
	NamePrefix:   "NFT #",
	Description:  "A unique NFT from my collection",
	ImageBaseURI: "ipfs://<CID>",
}

func sampleCombination() combination.Combination {
	return combination.Combination{
		{Category: "background", Trait: "blue.png"},
		{Category: "hat", Trait: "cap.png"},
	}
}

func TestTemplate_Build(t *testing.T) {
	rec := defaultTemplate.Build(1, sampleCombination())

	assert.Equal(t, "NFT #1", rec.Name)
	assert.Equal(t, "A unique NFT from my collection", rec.Description)
	assert.Equal(t, "ipfs://<CID>/1.png", rec.Image)
	assert.Equal(t, []Attribute{
		{TraitType: "background", Value: "blue"},
		{TraitType: "hat", Value: "cap"},
	}, rec.Attributes)
	assert.Empty(t, rec.BackgroundColor)
}

func TestTemplate_Build_CustomTemplate(t *testing.T) {
	tmpl := Template{NamePrefix: "Ape ", Description: "apes", ImageBaseURI: "https://cdn.example/apes"}
	rec := tmpl.Build(42, combination.Combination{{Category: "fur", Trait: "gold.fur.jpeg"}})

	assert.Equal(t, "Ape 42", rec.Name)
	assert.Equal(t, "https://cdn.example/apes/42.png", rec.Image)
	assert.Equal(t, "gold.fur", rec.Attributes[0].Value)
}

func TestEncode(t *testing.T) {
	data, err := Encode(defaultTemplate.Build(1, sampleCombination()))
	require.NoError(t, err)

	t.Run("four space indent", func(t *testing.T) {
		assert.True(t, bytes.HasPrefix(data, []byte("{\n    \"name\"")), string(data))
		assert.Contains(t, string(data), "\n        {\n            \"trait_type\"")
	})

	t.Run("fields in contract order", func(t *testing.T) {
		order := []string{`"name"`, `"description"`, `"image"`, `"attributes"`}
		last := -1
		for _, key := range order {
			idx := bytes.Index(data, []byte(key))
			require.Greater(t, idx, last, "%s out of order", key)
			last = idx
		}
	})

	t.Run("background color omitted unless set", func(t *testing.T) {
		assert.NotContains(t, string(data), "background_color")

		rec := defaultTemplate.Build(1, sampleCombination())
		rec.BackgroundColor = "ff0000"
		withColor, err := Encode(rec)
		require.NoError(t, err)
		assert.Contains(t, string(withColor), `"background_color"`)
	})

	t.Run("decodes to the documented shape", func(t *testing.T) {
		var doc map[string]any
		require.NoError(t, json.Unmarshal(data, &doc))

		assert.Equal(t, map[string]any{
			"name":        "NFT #1",
			"description": "A unique NFT from my collection",
			"image":       "ipfs://<CID>/1.png",
			"attributes": []any{
				map[string]any{"trait_type": "background", "value": "blue"},
				map[string]any{"trait_type": "hat", "value": "cap"},
			},
		}, doc)
	})

	t.Run("no categories gives empty attributes", func(t *testing.T) {
		empty, err := Encode(defaultTemplate.Build(7, nil))
		require.NoError(t, err)

		var doc map[string]any
		require.NoError(t, json.Unmarshal(empty, &doc))
		assert.Equal(t, []any{}, doc["attributes"])
	})
}

func TestDecode(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		rec := defaultTemplate.Build(3, sampleCombination())
		rec.BackgroundColor = "00ff7f"

		data, err := Encode(rec)
		require.NoError(t, err)

		got, err := Decode(data)
		require.NoError(t, err)
		assert.Equal(t, rec, got)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := Decode([]byte("{"))
		assert.ErrorIs(t, err, domainerrors.ErrDecode)
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := Decode([]byte(`{"image":"ipfs://x/1.png","attributes":[]}`))
		assert.ErrorIs(t, err, domainerrors.ErrValidation)
	})

	t.Run("bad background color", func(t *testing.T) {
		_, err := Decode([]byte(`{"name":"n","image":"i","attributes":[],"background_color":"#ff0000"}`))
		assert.ErrorIs(t, err, domainerrors.ErrValidation)
	})
}

func newTestEmitter(t *testing.T) (*Emitter, *images.Storage) {
	t.Helper()
	store, err := images.NewStorage(t.TempDir(), "metadata", ".json")
	require.NoError(t, err)
	return NewEmitter(store, defaultTemplate, logger.Discard().Logger), store
}

func TestEmitter_Emit(t *testing.T) {
	t.Run("writes id.json", func(t *testing.T) {
		emitter, store := newTestEmitter(t)

		rec, err := emitter.Emit(1, sampleCombination())
		require.NoError(t, err)
		assert.Equal(t, "NFT #1", rec.Name)

		data, err := os.ReadFile(filepath.Join(store.Dir(), "1.json"))
		require.NoError(t, err)
		expected, err := Encode(rec)
		require.NoError(t, err)
		assert.Equal(t, expected, data)
	})

	t.Run("overwrites previous run", func(t *testing.T) {
		emitter, store := newTestEmitter(t)
		require.NoError(t, os.WriteFile(store.Path("1"), []byte("stale"), 0o644))

		_, err := emitter.Emit(1, sampleCombination())
		require.NoError(t, err)

		got, err := emitter.Read(1)
		require.NoError(t, err)
		assert.Equal(t, "ipfs://<CID>/1.png", got.Image)
	})

	t.Run("read missing record", func(t *testing.T) {
		emitter, _ := newTestEmitter(t)
		_, err := emitter.Read(9)
		assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	})
}

func TestEmitter_Write_StorageFailure(t *testing.T) {
	emitter, store := newTestEmitter(t)
	require.NoError(t, os.RemoveAll(store.Dir()))

	err := emitter.Write(1, emitter.Record(1, sampleCombination()))
	assert.ErrorIs(t, err, domainerrors.ErrStorage)
}
