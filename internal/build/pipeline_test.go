package build

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeExec records which steps were spawned and fails the named one.
type fakeExec struct {
	calls []string
	fail  string
}

func (f *fakeExec) run(_ context.Context, _ string, argv []string) ([]byte, error) {
	f.calls = append(f.calls, argv[0])
	if argv[0] == f.fail {
		return []byte("npm ERR! build failed"), errors.New("exit status 1")
	}
	return []byte("done"), nil
}

func steps(names ...string) []Step {
	out := make([]Step, len(names))
	for i, n := range names {
		out[i] = Step{Name: n, Argv: []string{n}, Timeout: time.Second}
	}
	return out
}

func TestPipeline_AllPass(t *testing.T) {
	fe := &fakeExec{}
	p := NewPipeline(zap.NewNop(), steps("clean", "install", "build", "verify"))
	p.Exec = fe.run

	results, ok := p.Run(context.Background())
	require.True(t, ok)
	require.Len(t, results, 4)
	for _, r := range results {
		require.Equal(t, Passed, r.State)
	}
	require.Equal(t, []string{"clean", "install", "build", "verify"}, fe.calls)
}

func TestPipeline_ShortCircuitsOnFirstFailure(t *testing.T) {
	fe := &fakeExec{fail: "install"}
	p := NewPipeline(zap.NewNop(), steps("clean", "install", "build", "verify"))
	p.Exec = fe.run

	results, ok := p.Run(context.Background())
	require.False(t, ok)
	require.Equal(t, Passed, results[0].State)
	require.Equal(t, Failed, results[1].State)
	require.Equal(t, Pending, results[2].State)
	require.Equal(t, Pending, results[3].State)

	// steps 3 and 4 must never be spawned
	require.Equal(t, []string{"clean", "install"}, fe.calls)
	require.Contains(t, results[1].Output, "npm ERR!")
}

func TestPipeline_StepTimeout(t *testing.T) {
	p := NewPipeline(zap.NewNop(), []Step{{
		Name:    "slow",
		Argv:    []string{"slow"},
		Timeout: 20 * time.Millisecond,
	}})
	p.Exec = func(ctx context.Context, _ string, _ []string) ([]byte, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	results, ok := p.Run(context.Background())
	require.False(t, ok)
	require.Equal(t, Failed, results[0].State)
	require.Contains(t, results[0].Err, "timed out")
}

func TestPipeline_InProcessVerifyStep(t *testing.T) {
	called := false
	p := NewPipeline(zap.NewNop(), []Step{{
		Name: "verify",
		Func: func(context.Context) error {
			called = true
			return nil
		},
	}})

	_, ok := p.Run(context.Background())
	require.True(t, ok)
	require.True(t, called)
}

func TestRailway_BuildsFourSteps(t *testing.T) {
	s := Railway("/tmp/app", time.Minute, func(context.Context) error { return nil })
	require.Len(t, s, 4)
	require.Equal(t, "clean", s[0].Name)
	require.Equal(t, "verify", s[3].Name)
	require.NotNil(t, s[3].Func)
	require.Nil(t, s[3].Argv)
}
