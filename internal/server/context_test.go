package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/docsforge/google-docs-mcp/internal/auth"
	"github.com/docsforge/google-docs-mcp/internal/gdocs"
)

// recordingFactory captures the credentials each client was built with.
type recordingFactory struct {
	tokens []string
}

func (f *recordingFactory) build(ctx context.Context, creds auth.Credentials, opts ...option.ClientOption) (*gdocs.Client, error) {
	f.tokens = append(f.tokens, creds.AccessToken)
	return gdocs.NewClient(ctx, creds, opts...)
}

func TestClientForRequestUsesContextCredentials(t *testing.T) {
	factory := &recordingFactory{}
	sc, err := NewServerContext(context.Background(), WithClientFactory(factory.build))
	require.NoError(t, err)
	defer func() { _ = sc.Shutdown() }()

	ctx := auth.ContextWithCredentials(context.Background(), auth.Credentials{AccessToken: "request-token"})
	client, err := sc.ClientForRequest(ctx)
	require.NoError(t, err)
	assert.NotNil(t, client)
	assert.Equal(t, []string{"request-token"}, factory.tokens)
}

func TestClientForRequestFallsBackToStaticToken(t *testing.T) {
	factory := &recordingFactory{}
	sc, err := NewServerContext(context.Background(),
		WithClientFactory(factory.build),
		WithStaticToken("startup-token"),
	)
	require.NoError(t, err)
	defer func() { _ = sc.Shutdown() }()

	_, err = sc.ClientForRequest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"startup-token"}, factory.tokens)

	// Request credentials still win over the static fallback.
	ctx := auth.ContextWithCredentials(context.Background(), auth.Credentials{AccessToken: "request-token"})
	_, err = sc.ClientForRequest(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"startup-token", "request-token"}, factory.tokens)
}

func TestClientForRequestFailsClosedWithoutToken(t *testing.T) {
	factory := &recordingFactory{}
	sc, err := NewServerContext(context.Background(), WithClientFactory(factory.build))
	require.NoError(t, err)
	defer func() { _ = sc.Shutdown() }()

	_, err = sc.ClientForRequest(context.Background())
	require.Error(t, err)
	assert.True(t, auth.IsMissingToken(err))
	assert.Empty(t, factory.tokens, "no client may be built without credentials")
}

func TestClientForRequestBuildsFreshClientPerRequest(t *testing.T) {
	factory := &recordingFactory{}
	sc, err := NewServerContext(context.Background(), WithClientFactory(factory.build))
	require.NoError(t, err)
	defer func() { _ = sc.Shutdown() }()

	ctxA := auth.ContextWithCredentials(context.Background(), auth.Credentials{AccessToken: "tenant-a"})
	ctxB := auth.ContextWithCredentials(context.Background(), auth.Credentials{AccessToken: "tenant-b"})

	clientA, err := sc.ClientForRequest(ctxA)
	require.NoError(t, err)
	clientB, err := sc.ClientForRequest(ctxB)
	require.NoError(t, err)

	assert.NotSame(t, clientA, clientB)
	assert.Equal(t, []string{"tenant-a", "tenant-b"}, factory.tokens)
}

func TestHasStaticToken(t *testing.T) {
	sc, err := NewServerContext(context.Background())
	require.NoError(t, err)
	assert.False(t, sc.HasStaticToken())
	_ = sc.Shutdown()

	sc, err = NewServerContext(context.Background(), WithStaticToken("tok"))
	require.NoError(t, err)
	assert.True(t, sc.HasStaticToken())
	_ = sc.Shutdown()
}

func TestShutdownIsIdempotent(t *testing.T) {
	sc, err := NewServerContext(context.Background())
	require.NoError(t, err)

	assert.False(t, sc.IsShutdown())
	require.NoError(t, sc.Shutdown())
	assert.True(t, sc.IsShutdown())
	require.NoError(t, sc.Shutdown())

	select {
	case <-sc.Context().Done():
	default:
		t.Fatal("server context should be cancelled after shutdown")
	}
}
