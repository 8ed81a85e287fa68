// Package imagegen generates images from text prompts with the ClipDrop API.
//
// The request is a multipart form with a single prompt field, authenticated
// with the x-api-key header; the answer is the raw PNG. Failures from the
// service surface as *UpstreamServiceError, whose UserMessage turns 402 and
// 403 into messages an operator can act on.
package imagegen
