// Package model abstracts the external text-completion service behind the
// Completer interface so agents never depend on a concrete provider SDK.
// Subpackages provide adapters for Amazon Bedrock, the Anthropic Messages
// API and the OpenAI Chat Completions API; MockCompleter covers tests and
// local development. Limiting wrappers (CallLimiter, Throttled) compose
// around any Completer.
package model
