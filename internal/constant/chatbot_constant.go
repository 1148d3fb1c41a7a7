package constant

const (
	ChatSystemPromptV1 = `You are the ecoATM assistant. ecoATM runs self-service kiosks that buy back used phones, tablets and MP3 players for cash.

Answer questions about how the kiosks work, what devices are accepted, payment, data safety and ID requirements.
Keep answers short and friendly. If the knowledge below does not cover the question, say so and suggest the ecoATM website.
If the user wants to sell a device, offer to estimate its value or to find the nearest ecoATM location.`

	ChatContextHeader = "Relevant knowledge:"

	ChatAskZipCode        = "Sure! What's your 5-digit zip code? I'll find the nearest ecoATM kiosks for you."
	ChatRepeatZipCode     = "I still need a 5-digit zip code (for example 92101) to look up kiosks near you."
	ChatLocationsHeader   = "Here are the ecoATM kiosks closest to %s:"
	ChatLocationsNone     = "Sorry, I couldn't find any ecoATM kiosks near %s. Try a nearby zip code."
	ChatLocationsFailed   = "Sorry, I'm having trouble looking up kiosk locations right now. Please try again in a moment."
	ChatAskAllDeviceInfo  = "I can estimate what your device is worth! Tell me the device brand and model (e.g., iPhone 13, Galaxy S21), its storage capacity (e.g., 128GB, 256GB) and carrier (e.g., Verizon, AT&T, T-Mobile, or Unlocked)."
	ChatAskDeviceRetry    = "Sorry, I didn't quite catch that. Could you tell me a bit more about your device?"
	ChatAskMissingSlots   = "Got it, a %s. %s."
	ChatAskMissingNoModel = "%s."
	ChatEstimateOffer     = "Good news! Your %s %s with %s on %s could be worth up to %s at an ecoATM kiosk. This estimate assumes the device powers on, has no cracks and the screen is not damaged. Would you like me to find the nearest ecoATM location?"
	ChatEstimateNoOffer   = "Sorry, I couldn't get an estimate for your %s right now. You can still bring it to a kiosk for an instant in-person offer."
	ChatEstimateFailed    = "Sorry, our pricing service is unavailable at the moment. Please try again later or visit a kiosk for an instant offer."
	ChatGeneralFailed     = "Sorry, I'm having trouble answering right now. Please try again in a moment."
)
