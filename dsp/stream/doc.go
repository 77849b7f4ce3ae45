// Package stream provides the pull-based sequence abstraction shared by the
// framing, transform and synthesis stages.
//
// A [Source] produces one element per call to Next and reports false once it
// is exhausted. Stages wrap their upstream Source and only pull as much input
// as they need to produce the next output element, so an unbounded sample
// stream is never materialized. Stopping early is simply not calling Next
// again.
package stream
