package batch

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/brand-ad-studio/internal/imageprompt"
	"github.com/jonathan/brand-ad-studio/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedImages returns one scripted outcome per call
type scriptedImages struct {
	outcomes []func() ([]string, error)
	prompts  []string
}

func (s *scriptedImages) Generate(_ context.Context, prompt string) ([]string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.outcomes[len(s.prompts)-1]()
}

func ok(img string) func() ([]string, error) {
	return func() ([]string, error) { return []string{img}, nil }
}

func fail() func() ([]string, error) {
	return func() ([]string, error) { return nil, errors.New("upstream 500") }
}

func empty() func() ([]string, error) {
	return func() ([]string, error) { return []string{}, nil }
}

// fakeClock records sleeps instead of waiting
type fakeClock struct {
	slept []time.Duration
	err   error
}

func (c *fakeClock) Sleep(_ context.Context, d time.Duration) error {
	c.slept = append(c.slept, d)
	return c.err
}

type progressCall struct{ current, total int }

func TestGenerate_IsolatesFailures(t *testing.T) {
	images := &scriptedImages{outcomes: []func() ([]string, error){ok("img-1"), fail(), ok("img-3")}}
	clock := &fakeClock{}
	var progress []progressCall

	got, err := New(images, clock.Sleep, nil).Generate(context.Background(), "base", 3, func(current, total int) {
		progress = append(progress, progressCall{current, total})
	})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "img-1", got[0].DataURL)
	assert.Equal(t, 0, got[0].Index)
	assert.Equal(t, "img-3", got[1].DataURL)
	assert.Equal(t, 2, got[1].Index)
	assert.Equal(t, []progressCall{{1, 3}, {2, 3}, {3, 3}}, progress)
	assert.Equal(t, []time.Duration{InterRequestDelay, InterRequestDelay}, clock.slept)
}

func TestGenerate_AppliesVariations(t *testing.T) {
	images := &scriptedImages{outcomes: []func() ([]string, error){ok("a"), ok("b")}}

	_, err := New(images, (&fakeClock{}).Sleep, nil).Generate(context.Background(), "base", 2, nil)
	require.NoError(t, err)

	assert.Equal(t, imageprompt.WithVariation("base", 0), images.prompts[0])
	assert.Equal(t, imageprompt.WithVariation("base", 1), images.prompts[1])
	assert.NotEqual(t, images.prompts[0], images.prompts[1])
}

func TestGenerate_AllFail(t *testing.T) {
	images := &scriptedImages{outcomes: []func() ([]string, error){fail(), empty(), fail(), empty()}}
	calls := 0

	got, err := New(images, (&fakeClock{}).Sleep, nil).Generate(context.Background(), "base", 4, func(int, int) { calls++ })

	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 4, calls)
}

func TestGenerate_SingleImageDoesNotSleep(t *testing.T) {
	clock := &fakeClock{}
	images := &scriptedImages{outcomes: []func() ([]string, error){ok("a")}}

	got, err := New(images, clock.Sleep, nil).Generate(context.Background(), "base", 1, nil)

	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Empty(t, clock.slept)
}

func TestGenerate_TotalDelay(t *testing.T) {
	for _, n := range []int{1, 2, 5, 10} {
		clock := &fakeClock{}
		outcomes := make([]func() ([]string, error), n)
		for i := range outcomes {
			outcomes[i] = ok("img")
		}

		_, err := New(&scriptedImages{outcomes: outcomes}, clock.Sleep, nil).Generate(context.Background(), "base", n, nil)
		require.NoError(t, err)

		var total time.Duration
		for _, d := range clock.slept {
			total += d
		}
		assert.Equal(t, 2*time.Second*time.Duration(n-1), total)
	}
}

func TestGenerate_CancelledBetweenIterations(t *testing.T) {
	clock := &fakeClock{err: context.Canceled}
	images := &scriptedImages{outcomes: []func() ([]string, error){ok("a"), ok("b"), ok("c")}}

	got, err := New(images, clock.Sleep, nil).Generate(context.Background(), "base", 3, nil)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, got, 1)
	assert.Len(t, images.prompts, 1)
}

func TestGenerate_ZeroCount(t *testing.T) {
	for _, n := range []int{0, -1, -100} {
		images := &scriptedImages{}
		got, err := New(images, nil, nil).Generate(context.Background(), "base", n, nil)

		require.NoError(t, err, n)
		assert.NotNil(t, got, n)
		assert.Empty(t, got, n)
		assert.Empty(t, images.prompts, n)
	}
}

func TestGenerateFromCopy(t *testing.T) {
	images := &scriptedImages{outcomes: []func() ([]string, error){ok("a")}}
	in := imageprompt.Input{Theme: "Summer", Brand: &types.Brand{Name: "Harbor"}, Copy: &types.AdCopy{Headline: "Cool down"}}

	_, err := New(images, (&fakeClock{}).Sleep, nil).GenerateFromCopy(context.Background(), in, 1, nil)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(images.prompts[0], imageprompt.Build(in)))
}

func TestEstimateDuration(t *testing.T) {
	assert.Equal(t, 15*time.Second, EstimateDuration(1))
	assert.Equal(t, 49*time.Second, EstimateDuration(3))
	assert.Equal(t, 168*time.Second, EstimateDuration(10))
	assert.Equal(t, time.Duration(0), EstimateDuration(0))
}

func TestContextSleep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, ContextSleep(ctx, time.Hour), context.Canceled)
	assert.NoError(t, ContextSleep(context.Background(), time.Millisecond))
}
