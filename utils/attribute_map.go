package utils

// AttributeMap holds the raw, untyped attributes of a config entry as decoded from JSON.
// Each consumer converts it into its own native config struct.
type AttributeMap map[string]interface{}
