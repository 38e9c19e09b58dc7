// Package feed talks to the external posts endpoint. It decodes the JSON post
// list returned by GET and performs the HEAD existence check used by the
// status prober.
//
// Failures are classified into two kinds:
//
//   - transport failures (*TransportError): the request never produced a response
//   - protocol failures (*StatusError, *DecodeError): a non-2xx status, or a
//     body that is not a JSON array of posts
package feed
