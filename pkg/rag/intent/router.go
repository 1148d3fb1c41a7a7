// Package intent decides what the assistant does with a message. Classification is a pure
// function of the message and the session flags; applying the decision is left to the caller.
package intent

import (
	"strings"

	"kiosk-assistant-be/pkg/device"
	"kiosk-assistant-be/pkg/store"
)

type Action string

const (
	ActionResolveLocation Action = "RESOLVE_LOCATION"
	ActionAskForZip       Action = "ASK_FOR_ZIP"
	ActionResolveEstimate Action = "RESOLVE_ESTIMATE"
	ActionAskForSlot      Action = "ASK_FOR_SLOT"
	ActionGeneral         Action = "GENERAL"
)

// PromptKind selects the wording of an ASK_FOR_SLOT or ASK_FOR_ZIP reply
type PromptKind int

const (
	PromptNone PromptKind = iota
	// PromptMissing lists the absent slots of Decision.Slots
	PromptMissing
	// PromptRetry is a generic re-prompt: nothing in the message could be attributed to a slot,
	// or a zip code is still outstanding
	PromptRetry
	// PromptAll asks for every field on a first attempt with nothing recognized
	PromptAll
)

// Input is one user message plus optional structured slot fields
type Input struct {
	Message string
	Slots   map[string]string
}

type Decision struct {
	Action  Action
	ZipCode string
	// Slots is the merged set for RESOLVE_ESTIMATE and ASK_FOR_SLOT
	Slots  *device.SlotSet
	Prompt PromptKind
}

// Classify applies the routing rules in order; the first match wins.
// A nil session is treated as a fresh one.
func Classify(in Input, session *store.Session) Decision {
	if session == nil {
		session = &store.Session{}
	}

	// 1. a zip code pre-empts everything
	if zip := zipCodePattern.FindString(in.Message); zip != "" {
		return Decision{Action: ActionResolveLocation, ZipCode: zip}
	}

	// 2. still waiting for a zip
	if session.AwaitingZipCode {
		return Decision{Action: ActionAskForZip, Prompt: PromptRetry}
	}

	// 3. location intent
	if HasLocationIntent(in.Message, session) {
		return Decision{Action: ActionAskForZip}
	}

	// 4. estimate intent, any structured slot fields, or an estimate already in progress
	structured := device.ExtractStructured(in.Slots)
	if HasEstimateIntent(in.Message) || len(in.Slots) > 0 || session.AwaitingDeviceInfo {
		return classifyEstimate(in.Message, structured, session)
	}

	return Decision{Action: ActionGeneral}
}

func classifyEstimate(message string, structured *device.SlotSet, session *store.Session) Decision {
	var extracted *device.SlotSet
	if session.AwaitingDeviceInfo {
		extracted = device.ExtractFollowUp(message)
	} else {
		extracted = device.Extract(message)
	}
	incoming := device.Merge(extracted, structured)

	if incoming == nil {
		if session.AwaitingDeviceInfo {
			return Decision{Action: ActionAskForSlot, Slots: session.PartialSlots, Prompt: PromptRetry}
		}
		return Decision{Action: ActionAskForSlot, Prompt: PromptAll}
	}

	var existing *device.SlotSet
	if session.AwaitingDeviceInfo {
		existing = session.PartialSlots
	}
	merged := device.Merge(existing, incoming)

	if merged.IsComplete() {
		return Decision{Action: ActionResolveEstimate, Slots: merged}
	}
	return Decision{Action: ActionAskForSlot, Slots: merged, Prompt: PromptMissing}
}

// HasLocationIntent reports a whole-word location keyword, or a short yes to the
// previous assistant offer to find the nearest location. "What is ecoATM" questions never count.
func HasLocationIntent(message string, session *store.Session) bool {
	if whatIsPattern.MatchString(message) {
		return false
	}
	if locationPattern.MatchString(message) {
		return true
	}
	if session == nil {
		return false
	}
	last, ok := session.LastAssistantTurn()
	if !ok || !strings.Contains(strings.ToLower(last.Text), LocationOfferPhrase) {
		return false
	}
	return isAffirmative(message)
}

// HasEstimateIntent reports an estimate keyword together with a device keyword.
func HasEstimateIntent(message string) bool {
	lower := strings.ToLower(message)
	return containsAny(lower, EstimateKeywords) && containsAny(lower, DeviceKeywords)
}

func isAffirmative(message string) bool {
	reply := strings.ToLower(strings.Trim(message, " \t\r\n.!?,"))
	for _, word := range AffirmativeReplies {
		if reply == word {
			return true
		}
	}
	return false
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
