package registry_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/xmlres/internal/adapters/registry"
	"go.trai.ch/xmlres/internal/adapters/rescache"
	"go.trai.ch/xmlres/internal/adapters/resolver"
	"go.trai.ch/xmlres/internal/core/domain"
	"go.trai.ch/xmlres/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestEntities_ResolveEntity(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, "types.xsd")
	require.NoError(t, os.WriteFile(local, []byte("<local/>"), 0o600))
	cached := filepath.Join(dir, "cached.xsd")
	require.NoError(t, os.WriteFile(cached, []byte("<cached/>"), 0o600))
	base := domain.FileURI(filepath.Join(dir, "main.xsd"))

	chain, err := resolver.NewChain()
	require.NoError(t, err)

	t.Run("local file", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := mocks.NewMockResourceCache(ctrl)
		cache.EXPECT().CanUseCache(domain.FileURI(local)).Return(false)

		src, err := registry.NewEntities(chain, cache).ResolveEntity(context.Background(),
			domain.Identifier{SystemID: "types.xsd", BaseLocation: base})
		require.NoError(t, err)
		require.NotNil(t, src)
		assert.Equal(t, domain.FileURI(local), src.SystemID)
		assert.Equal(t, "<local/>", string(src.Body))
	})

	t.Run("missing local file", func(t *testing.T) {
		src, err := registry.NewEntities(chain, nil).ResolveEntity(context.Background(),
			domain.Identifier{SystemID: "nope.xsd", BaseLocation: base})
		require.NoError(t, err)
		assert.Nil(t, src)
	})

	t.Run("cached remote", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := mocks.NewMockResourceCache(ctrl)
		cache.EXPECT().CanUseCache("http://example.org/a.xsd").Return(true)
		cache.EXPECT().GetResource(gomock.Any(), "http://example.org/a.xsd").Return(cached, nil)

		src, err := registry.NewEntities(chain, cache).ResolveEntity(context.Background(),
			domain.Identifier{SystemID: "http://example.org/a.xsd", BaseLocation: base})
		require.NoError(t, err)
		require.NotNil(t, src)
		assert.Equal(t, "http://example.org/a.xsd", src.SystemID)
		assert.Equal(t, "<cached/>", string(src.Body))
	})

	t.Run("busy remote", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := mocks.NewMockResourceCache(ctrl)
		cache.EXPECT().CanUseCache(gomock.Any()).Return(true)
		cache.EXPECT().GetResource(gomock.Any(), gomock.Any()).
			Return("", &domain.BusyDownloadingError{URI: "http://example.org/a.xsd", Signal: domain.NewPendingSignal("http://example.org/a.xsd")})

		_, err := registry.NewEntities(chain, cache).ResolveEntity(context.Background(),
			domain.Identifier{SystemID: "http://example.org/a.xsd"})
		require.ErrorIs(t, err, domain.ErrBusyDownloading)
	})

	t.Run("failed remote", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := mocks.NewMockResourceCache(ctrl)
		cache.EXPECT().CanUseCache(gomock.Any()).Return(true)
		cache.EXPECT().GetResource(gomock.Any(), gomock.Any()).Return("", nil)

		src, err := registry.NewEntities(chain, cache).ResolveEntity(context.Background(),
			domain.Identifier{SystemID: "http://example.org/a.xsd"})
		require.NoError(t, err)
		assert.Nil(t, src)
	})

	t.Run("entity resolvers of the chain win", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store, err := rescache.NewStore(t.TempDir())
		require.NoError(t, err)
		bundled := resolver.NewBundled(store, newQuietLogger(t))
		withBundled, err := resolver.NewChain(bundled)
		require.NoError(t, err)
		cache := mocks.NewMockResourceCache(ctrl)

		src, err := registry.NewEntities(withBundled, cache).ResolveEntity(context.Background(),
			domain.Identifier{PublicID: domain.XMLNamespace})
		require.NoError(t, err)
		require.NotNil(t, src)
		assert.Contains(t, string(src.Body), `targetNamespace="http://www.w3.org/XML/1998/namespace"`)
	})
}
