package host_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/incr/internal/adapters/host"
	"go.trai.ch/incr/internal/core/domain"
	"go.trai.ch/incr/internal/core/ports"
	"go.trai.ch/incr/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Info(string)     {}
func (l *recordingLogger) Warn(msg string) { l.warnings = append(l.warnings, msg) }
func (l *recordingLogger) Error(error)     {}

func newHost(t *testing.T) (*host.CachingHost, *mocks.MockCompilerHost, *domain.Graph, *domain.ContentCache, *recordingLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	inner := mocks.NewMockCompilerHost(ctrl)
	graph := domain.NewGraph()
	cache := domain.NewContentCache()
	logger := &recordingLogger{}
	return host.NewCachingHost(inner, graph, cache, logger), inner, graph, cache, logger
}

func TestCachingHost_FileExistsCachesAnswer(t *testing.T) {
	h, inner, _, cache, _ := newHost(t)
	id := domain.NewResourceID("/project/a.ts")

	inner.EXPECT().FileExists(id).Return(true).Times(1)

	assert.True(t, h.FileExists(id))
	assert.True(t, h.FileExists(id), "second call must be served from cache")
	assert.Equal(t, domain.TriTrue, cache.GetOrCreate(id).Exists())
}

func TestCachingHost_FileExistsCachesNegativeAnswer(t *testing.T) {
	h, inner, _, _, _ := newHost(t)
	id := domain.NewResourceID("/project/missing.ts")

	inner.EXPECT().FileExists(id).Return(false).Times(1)

	assert.False(t, h.FileExists(id))
	assert.False(t, h.FileExists(id))
}

func TestCachingHost_ReadFileReadsThroughOnce(t *testing.T) {
	h, inner, _, cache, _ := newHost(t)
	id := domain.NewResourceID("/project/a.ts")

	inner.EXPECT().ReadFile(id).Return([]byte("export {}"), nil).Times(1)

	content, err := h.ReadFile(id)
	require.NoError(t, err)
	assert.Equal(t, []byte("export {}"), content)

	again, err := h.ReadFile(id)
	require.NoError(t, err)
	assert.Equal(t, content, again)

	version, ok := cache.GetOrCreate(id).Version()
	require.True(t, ok)
	assert.NotZero(t, version)
}

func TestCachingHost_ReadFileAfterEvictionRereads(t *testing.T) {
	h, inner, _, cache, _ := newHost(t)
	id := domain.NewResourceID("/project/a.ts")

	inner.EXPECT().ReadFile(id).Return([]byte("v1"), nil).Times(1)
	_, err := h.ReadFile(id)
	require.NoError(t, err)

	cache.Delete(id)

	inner.EXPECT().ReadFile(id).Return([]byte("v2"), nil).Times(1)
	content, err := h.ReadFile(id)
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), content)
}

func TestCachingHost_ResolveResourceRegistersEdge(t *testing.T) {
	h, inner, graph, _, _ := newHost(t)
	containing := domain.NewResourceID("/project/a.ts")
	resolved := domain.NewResourceID("/project/a.css")

	inner.EXPECT().ResolveResource(containing, "./a.css").Return(resolved, nil)

	got, err := h.ResolveResource(containing, "./a.css")
	require.NoError(t, err)
	assert.Equal(t, resolved, got)
	assert.Contains(t, graph.DependsOn(containing), resolved)
	assert.Contains(t, graph.Dependees(resolved), containing)
}

func TestCachingHost_ResolveResourceFailure(t *testing.T) {
	h, inner, graph, _, _ := newHost(t)
	containing := domain.NewResourceID("/project/a.ts")

	inner.EXPECT().
		ResolveResource(containing, "./nope.css").
		Return(domain.ResourceID{}, zerr.New("not found"))

	_, err := h.ResolveResource(containing, "./nope.css")
	require.Error(t, err)
	assert.Empty(t, graph.DependsOn(containing), "no edge on failed resolution")
}

func TestCachingHost_ReadResourceMissWrapsError(t *testing.T) {
	h, inner, _, _, _ := newHost(t)
	id := domain.NewResourceID("/project/gone.css")

	inner.EXPECT().
		ReadResource(gomock.Any(), id).
		Return(nil, zerr.New("no such file"))

	_, err := h.ReadResource(t.Context(), id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrUnreadableResource.Error())
}

func TestCachingHost_TransformResourceRegistersEdgeAndLogsWarnings(t *testing.T) {
	h, inner, graph, _, logger := newHost(t)
	tctx := ports.TransformContext{
		Containing: domain.NewResourceID("/project/a.ts"),
		Resource:   domain.NewResourceID("/project/a.css"),
	}

	inner.EXPECT().
		TransformResource(gomock.Any(), []byte("body {}"), tctx).
		Return(ports.TransformResult{
			Content:  []byte("body{}"),
			Warnings: []string{"deprecated selector"},
		}, nil)

	result, err := h.TransformResource(t.Context(), []byte("body {}"), tctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("body{}"), result.Content)
	assert.Equal(t, []string{"deprecated selector"}, logger.warnings)
	assert.Contains(t, graph.DependsOn(tctx.Containing), tctx.Resource)
}

func TestCachingHost_TransformResourceErrorFailsOperation(t *testing.T) {
	h, inner, _, _, _ := newHost(t)
	tctx := ports.TransformContext{
		Containing: domain.NewResourceID("/project/a.ts"),
		Resource:   domain.NewResourceID("/project/a.css"),
	}

	inner.EXPECT().
		TransformResource(gomock.Any(), gomock.Any(), tctx).
		Return(ports.TransformResult{}, zerr.New("syntax error at line 3"))

	_, err := h.TransformResource(t.Context(), []byte("body {"), tctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrTransformFailed.Error())
}
