package intent

import (
	"testing"
	"time"

	"kiosk-assistant-be/pkg/device"
	"kiosk-assistant-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freshSession() *store.Session {
	return store.NewSession("test", time.Unix(0, 0))
}

func TestClassifyZipPreemptsEverything(t *testing.T) {
	tests := []struct {
		name    string
		message string
		session *store.Session
		zip     string
	}{
		{name: "location keywords present", message: "find a kiosk near 92101", session: freshSession(), zip: "92101"},
		{name: "plus four", message: "my zip is 92101-1234", session: freshSession(), zip: "92101-1234"},
		{name: "while awaiting zip", message: "92101", session: &store.Session{AwaitingZipCode: true}, zip: "92101"},
		{name: "while awaiting device", message: "how much for my phone 10001", session: &store.Session{AwaitingDeviceInfo: true}, zip: "10001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Classify(Input{Message: tt.message}, tt.session)
			assert.Equal(t, ActionResolveLocation, d.Action)
			assert.Equal(t, tt.zip, d.ZipCode)
		})
	}
}

func TestClassifyNotAZip(t *testing.T) {
	d := Classify(Input{Message: "order 123456 status"}, freshSession())
	assert.Equal(t, ActionGeneral, d.Action)
}

func TestClassifyAwaitingZip(t *testing.T) {
	d := Classify(Input{Message: "what's my iphone 13 worth"}, &store.Session{AwaitingZipCode: true})
	assert.Equal(t, ActionAskForZip, d.Action)
	assert.Equal(t, PromptRetry, d.Prompt)

	first := Classify(Input{Message: "where is the closest kiosk"}, freshSession())
	assert.Equal(t, ActionAskForZip, first.Action)
	assert.Equal(t, PromptNone, first.Prompt)
}

func TestClassifyIncompleteStructuredSlots(t *testing.T) {
	tests := []struct {
		name    string
		session *store.Session
		prompt  PromptKind
	}{
		{name: "first attempt", session: freshSession(), prompt: PromptAll},
		{name: "already awaiting device", session: &store.Session{AwaitingDeviceInfo: true}, prompt: PromptRetry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Classify(Input{Slots: map[string]string{"brand": "Apple"}}, tt.session)
			assert.Equal(t, ActionAskForSlot, d.Action)
			assert.Equal(t, tt.prompt, d.Prompt)
		})
	}
}

func TestClassifyLocationIntent(t *testing.T) {
	tests := []struct {
		message string
		want    Action
	}{
		{"Where is the closest kiosk?", ActionAskForZip},
		{"is there an ATM nearby", ActionAskForZip},
		{"find one for me", ActionAskForZip},
		{"What is ecoATM?", ActionGeneral},
		{"what's an eco atm near me", ActionGeneral},
		{"tell me about ecoATM", ActionGeneral},
		{"the kiosks are great", ActionGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(Input{Message: tt.message}, freshSession()).Action)
		})
	}
}

func TestClassifyAffirmativeAfterLocationOffer(t *testing.T) {
	s := freshSession()
	s.AppendTurn(store.RoleAssistant, "Would you like me to find the nearest ecoATM location?", time.Unix(1, 0))

	for _, msg := range []string{"yes", "Yeah!", "ok", "sure."} {
		assert.Equal(t, ActionAskForZip, Classify(Input{Message: msg}, s).Action, msg)
	}
	assert.Equal(t, ActionGeneral, Classify(Input{Message: "yes but how does it work"}, s).Action)

	other := freshSession()
	other.AppendTurn(store.RoleAssistant, "Anything else?", time.Unix(1, 0))
	assert.Equal(t, ActionGeneral, Classify(Input{Message: "yes"}, other).Action)
}

func TestClassifyEstimate(t *testing.T) {
	t.Run("complete on first message", func(t *testing.T) {
		d := Classify(Input{Message: "how much is my iPhone 13 Pro 256GB Verizon worth"}, freshSession())
		require.Equal(t, ActionResolveEstimate, d.Action)
		assert.Equal(t, "Apple", d.Slots.Brand)
		assert.True(t, d.Slots.IsComplete())
	})

	t.Run("partial asks for missing slots", func(t *testing.T) {
		d := Classify(Input{Message: "what's my Galaxy S21 worth"}, freshSession())
		require.Equal(t, ActionAskForSlot, d.Action)
		assert.Equal(t, PromptMissing, d.Prompt)
		assert.Equal(t, &device.SlotSet{Brand: "Samsung", Model: "Galaxy 21", Series: "Galaxy 21"}, d.Slots)
	})

	t.Run("nothing recognized on first attempt", func(t *testing.T) {
		d := Classify(Input{Message: "how much will you pay for my phone"}, freshSession())
		assert.Equal(t, ActionAskForSlot, d.Action)
		assert.Equal(t, PromptAll, d.Prompt)
		assert.Nil(t, d.Slots)
	})

	t.Run("follow-up merges with stored partial", func(t *testing.T) {
		s := freshSession()
		s.AwaitingDeviceInfo = true
		s.PartialSlots = &device.SlotSet{Brand: "Samsung", Model: "Galaxy 21", Series: "Galaxy 21"}

		d := Classify(Input{Message: "128GB on AT&T"}, s)
		require.Equal(t, ActionResolveEstimate, d.Action)
		assert.Equal(t, &device.SlotSet{Brand: "Samsung", Model: "Galaxy 21", Series: "Galaxy 21", Storage: "128GB", Carrier: "AT&T"}, d.Slots)
	})

	t.Run("follow-up with nothing recognized", func(t *testing.T) {
		s := freshSession()
		s.AwaitingDeviceInfo = true
		s.PartialSlots = &device.SlotSet{Brand: "Samsung", Model: "Galaxy 21"}

		d := Classify(Input{Message: "I am not sure"}, s)
		assert.Equal(t, ActionAskForSlot, d.Action)
		assert.Equal(t, PromptRetry, d.Prompt)
		assert.Same(t, s.PartialSlots, d.Slots)
	})

	t.Run("stale partial ignored when not awaiting", func(t *testing.T) {
		s := freshSession()
		s.PartialSlots = &device.SlotSet{Storage: "64GB", Carrier: "Sprint"}

		d := Classify(Input{Message: "what is my iphone 12 worth"}, s)
		require.Equal(t, ActionAskForSlot, d.Action)
		assert.Empty(t, d.Slots.Storage)
	})

	t.Run("structured slots", func(t *testing.T) {
		d := Classify(Input{Message: "", Slots: map[string]string{"brand": "Apple", "model": "iPhone 14"}}, freshSession())
		require.Equal(t, ActionResolveEstimate, d.Action)
		assert.Equal(t, device.DefaultStorage, d.Slots.Storage)
		assert.Equal(t, device.DefaultCarrier, d.Slots.Carrier)
	})

	t.Run("no device keyword", func(t *testing.T) {
		assert.Equal(t, ActionGeneral, Classify(Input{Message: "what is the price of gold"}, freshSession()).Action)
	})
}

func TestClassifyLocationBeforeEstimate(t *testing.T) {
	d := Classify(Input{Message: "where can I sell my phone"}, freshSession())
	assert.Equal(t, ActionAskForZip, d.Action)
}

func TestClassifyNilSession(t *testing.T) {
	assert.Equal(t, ActionGeneral, Classify(Input{Message: "hello"}, nil).Action)
}
