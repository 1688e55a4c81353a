// Package deepinfra wraps the DeepInfra OpenAI-compatible audio
// transcription API.
//
// Calls upload one audio artifact as multipart form data and are retried
// with exponential backoff on rate limits and server errors (429, 500, 502,
// 503, 504); every other status is terminal. The content gate that decides
// whether a transcription is meaningful enough to accept also lives here so
// the worker and its tests share one definition.
package deepinfra
