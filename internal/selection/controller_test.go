package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(price float64) (*Controller, *Mirror, *Mirror) {
	desktop, mobile := NewMirror("desktop"), NewMirror("mobile")
	return NewController(price, DefaultMoney(), desktop, mobile), desktop, mobile
}

func TestControllerScenarioThreeNumbers(t *testing.T) {
	c, desktop, mobile := newTestController(1000)

	for _, n := range []string{"5", "1", "12"} {
		require.True(t, c.Toggle(n, false))
	}

	st := c.Render(1000)
	assert.Equal(t, "1,5,12", st.MachineList)
	assert.Equal(t, "1, 5, 12", st.HumanList)
	assert.Equal(t, 3, st.Count)
	assert.Equal(t, 3000.0, st.Total)
	assert.Equal(t, "₡3,000.00", st.TotalText)
	assert.Equal(t, "(Total: ₡3,000.00)", st.TotalLabel)
	assert.True(t, st.PurchaseEnabled)
	assert.Equal(t, "Comprar 3 Núm. ₡3,000.00", st.PurchaseLabel)
	assert.Equal(t, desktop.State(), mobile.State())
}

func TestControllerDeselectOnlyNumber(t *testing.T) {
	c, desktop, mobile := newTestController(1000)

	c.Toggle("07", false)
	c.Toggle("07", false)

	st := desktop.State()
	assert.Equal(t, NoneLabel, st.HumanList)
	assert.Equal(t, "", st.MachineList)
	assert.Equal(t, 0, st.Count)
	assert.False(t, st.PurchaseEnabled)
	assert.Equal(t, "Seleccione Números", st.PurchaseLabel)
	assert.Equal(t, "", st.TotalLabel)
	assert.Equal(t, st, mobile.State())
}

func TestControllerSoldToggleIsNoop(t *testing.T) {
	c, desktop, _ := newTestController(500)
	c.Toggle("03", false)
	before := desktop.Renders()

	assert.False(t, c.Toggle("09", true))
	assert.Equal(t, []string{"03"}, c.Snapshot())
	assert.Equal(t, before, desktop.Renders())
	assert.False(t, c.Selected("09"))
}

func TestControllerToggleIsXOR(t *testing.T) {
	tests := []struct {
		name    string
		toggles []string
		want    []string
	}{
		{"empty", nil, []string{}},
		{"single", []string{"4"}, []string{"4"}},
		{"double cancels", []string{"4", "4"}, []string{}},
		{"interleaved", []string{"4", "2", "4", "9", "2", "2"}, []string{"2", "9"}},
		{"numeric order", []string{"10", "2", "33", "01"}, []string{"01", "2", "10", "33"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _ := newTestController(1)
			for _, n := range tt.toggles {
				c.Toggle(n, false)
			}
			assert.Equal(t, tt.want, c.Snapshot())
		})
	}
}

func TestControllerRestoreDropsSold(t *testing.T) {
	sold := map[string]bool{"05": true}
	c, desktop, mobile := newTestController(250)

	c.Restore([]string{"05", "12", "", "12", "03"}, func(n string) bool { return sold[n] })
	st := c.Render(250)

	assert.Equal(t, []string{"03", "12"}, c.Snapshot())
	assert.Equal(t, "03,12", st.MachineList)
	assert.Equal(t, "₡500.00", st.TotalText)
	assert.Equal(t, desktop.State(), mobile.State())
}

func TestControllerSkipsMissingSurface(t *testing.T) {
	mobile := NewMirror("mobile")
	c := NewController(1000, DefaultMoney(), nil, mobile)

	assert.NotPanics(t, func() { c.Toggle("1", false) })
	assert.Equal(t, "1", mobile.State().MachineList)
}

func TestControllerRenderIsIdempotent(t *testing.T) {
	c, desktop, mobile := newTestController(1000)
	c.Toggle("8", false)

	first := c.Render(1000)
	second := c.Render(1000)

	assert.Equal(t, first, second)
	assert.Equal(t, second, desktop.State())
	assert.Equal(t, second, mobile.State())
}

func TestControllerEmptyNumberIgnored(t *testing.T) {
	c, desktop, _ := newTestController(1000)
	assert.False(t, c.Toggle("", false))
	assert.Equal(t, 0, desktop.Renders())
}

func TestControllerStyleButton(t *testing.T) {
	c := NewController(1000, DefaultMoney())
	c.Toggle("07", false)

	selected := Button{Number: "07"}
	c.StyleButton(&selected)
	assert.Equal(t, StateSelected, selected.State)

	sold := Button{Number: "08", Sold: true}
	c.StyleButton(&sold)
	assert.Equal(t, StateSold, sold.State)

	free := Button{Number: "09"}
	c.StyleButton(&free)
	assert.Equal(t, StateAvailable, free.State)

	assert.NotPanics(t, func() { c.StyleButton(nil) })
}
