// Package provider defines the text-generation provider contract and its
// implementations for OpenRouter, OpenAI and Anthropic.
//
// Every provider advertises its models and the parameters it accepts as a
// [parameter.Set]. Generate validates the model and the supplied parameters
// before any generation request is sent, then normalizes the provider's wire
// format into the canonical [Response].
package provider
