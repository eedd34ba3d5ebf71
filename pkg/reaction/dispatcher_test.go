package reaction

import (
	"context"
	"testing"

	"github.com/dkuanyshbaev/ioracle-core/pkg/domain"
	"github.com/stretchr/testify/assert"
)

type fakeCounter struct {
	calls int
}

func (f *fakeCounter) Increment(ctx context.Context) (int, bool) {
	f.calls++
	return f.calls, false
}

func TestDispatch(t *testing.T) {
	tests := []struct {
		trigram domain.Trigram
		want    []domain.Effect
		pump    bool
	}{
		{"111", []domain.Effect{domain.ActivatePin(domain.PinA)}, false},
		{"110", []domain.Effect{domain.ActivatePin(domain.PinB)}, true},
		{"101", []domain.Effect{domain.TriggerFire()}, false},
		{"011", []domain.Effect{domain.ActivatePin(domain.PinC)}, false},
		{"100", []domain.Effect{domain.PlaySound("thunder")}, false},
		{"010", []domain.Effect{domain.ActivatePin(domain.PinD)}, true},
		{"001", []domain.Effect{domain.ActivatePin(domain.PinE), domain.PlaySound("mountain")}, true},
		{"000", []domain.Effect{domain.PlaySound("mountain")}, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.trigram), func(t *testing.T) {
			counter := &fakeCounter{}
			d := NewDispatcher(counter)

			assert.Equal(t, tt.want, d.Dispatch(context.Background(), tt.trigram))
			if tt.pump {
				assert.Equal(t, 1, counter.calls)
			} else {
				assert.Zero(t, counter.calls)
			}
		})
	}
}

func TestDispatch_Unknown(t *testing.T) {
	counter := &fakeCounter{}
	d := NewDispatcher(counter)

	for _, tg := range []domain.Trigram{"", "11", "1111", "abc"} {
		assert.Nil(t, d.Dispatch(context.Background(), tg))
	}
	assert.Zero(t, counter.calls)
	assert.Nil(t, d.Release("abc"))
}

func TestDispatch_NilCounter(t *testing.T) {
	d := NewDispatcher(nil)
	assert.Len(t, d.Dispatch(context.Background(), "110"), 1)
}

func TestDispatch_DoesNotShareTable(t *testing.T) {
	d := NewDispatcher(nil)
	got := d.Dispatch(context.Background(), "111")
	got[0] = domain.TriggerFire()

	assert.Equal(t, domain.ActivatePin(domain.PinA), Table["111"].Effects[0])
}

func TestReleaseCoversEveryActivatedPin(t *testing.T) {
	d := NewDispatcher(nil)
	for trigram := range Table {
		activated := map[domain.PinID]bool{}
		for _, e := range d.Dispatch(context.Background(), trigram) {
			if e.Kind == domain.EffectActivatePin {
				activated[e.Pin] = true
			}
		}

		released := map[domain.PinID]bool{}
		for _, e := range d.Release(trigram) {
			assert.Equal(t, domain.EffectReleasePin, e.Kind)
			released[e.Pin] = true
		}
		assert.Equal(t, activated, released, "trigram %s", trigram)
	}
}

func TestRelease_PumpPins(t *testing.T) {
	d := NewDispatcher(nil)
	assert.Equal(t, []domain.Effect{domain.ReleasePin(domain.PinB)}, d.Release("110"))
	assert.Equal(t, []domain.Effect{domain.ReleasePin(domain.PinD)}, d.Release("010"))
	assert.Equal(t, []domain.Effect{domain.ReleasePin(domain.PinE)}, d.Release("001"))
	assert.Empty(t, d.Release("101"))
}
