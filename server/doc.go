// Package server owns the oblivious store and exposes its four operations
// (Setup, ReadBlock, WriteBlock, Print) over HTTP.
//
// ServerImpl funnels every access through one mutex so that accesses are
// strictly serialized; Handler translates wire requests into engine calls
// and maps the error taxonomy onto HTTP statuses.
package server
