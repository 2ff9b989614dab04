// Package parameter describes the parameters a text-generation provider
// accepts and validates candidate values against them before any request is
// sent.
//
// A [Definition] names one parameter, its [Kind], an optional default and
// optional [Constraints]. Providers publish a [Set] of definitions; callers
// pass a [Params] bag of tagged [Value]s which is checked against that set.
package parameter
