// Package geminivo defines enums for the Gemini web chat client
package geminivo

// Model identifies a Gemini model variant selectable on the web app
type Model string

const (
	ModelUnspecified      Model = "unspecified"
	ModelG20Flash         Model = "gemini-2.0-flash"
	ModelG20FlashThinking Model = "gemini-2.0-flash-thinking"
	ModelG25Flash         Model = "gemini-2.5-flash"
	ModelG25Pro           Model = "gemini-2.5-pro"
	ModelG20ExpAdvanced   Model = "gemini-2.0-exp-advanced"
	ModelG25ExpAdvanced   Model = "gemini-2.5-exp-advanced"
)

// modelConfigHeaders maps each model to its x-goog-ext-525001261-jspb value.
// The values are opaque identifiers lifted from the web app's own requests;
// they must be sent verbatim and are not derivable.
var modelConfigHeaders = map[Model]string{
	ModelG20Flash:         `[1,null,null,null,"f299729663a2343f"]`,
	ModelG20FlashThinking: `[null,null,null,null,"7ca48d02d802f20a"]`,
	ModelG25Flash:         `[1,null,null,null,"35609594dbe934d8"]`,
	ModelG25Pro:           `[1,null,null,null,"2525e3954d185b3c"]`,
	ModelG20ExpAdvanced:   `[null,null,null,null,"b1e46a6037e6aa9f"]`,
	ModelG25ExpAdvanced:   `[null,null,null,null,"203e6bb81620bcfe"]`,
}

// Name returns the model name string used in persisted conversations
func (m Model) Name() string {
	return string(m)
}

// ConfigHeader returns the opaque per-model header value, if the model has one
func (m Model) ConfigHeader() (string, bool) {
	v, ok := modelConfigHeaders[m]
	return v, ok
}

// IsAdvancedOnly reports whether the model requires an advanced subscription
func (m Model) IsAdvancedOnly() bool {
	return m == ModelG20ExpAdvanced || m == ModelG25ExpAdvanced
}

// ModelFromName resolves a model by its persisted name
func ModelFromName(name string) (Model, bool) {
	switch Model(name) {
	case ModelUnspecified, ModelG20Flash, ModelG20FlashThinking,
		ModelG25Flash, ModelG25Pro, ModelG20ExpAdvanced, ModelG25ExpAdvanced:
		return Model(name), true
	}
	return ModelUnspecified, false
}
