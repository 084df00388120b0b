/*
Package channel implements the method-channel contract shared by the host UI
framework and platform views.

# Overview

A method channel carries named calls in both directions. Each inbound call is
a method name plus an already-decoded argument value and is answered exactly
once through a Result: success with a value, an error with a code, or
"not implemented". Outbound invocations are either fire-and-forget or carry a
Result that receives the other side's answer.

# Transports

The Messenger interface is the only thing a transport has to provide. The ws
package implements it over a websocket using the JSON Envelope codec in this
package; channeltest implements it in memory.

# Error Codes

Handlers report contract violations through sentinel errors that map onto
stable result codes:

  - ErrIllegalArgument -> "illegal_argument"
  - ErrNullArgument    -> "null_argument"
  - ErrIllegalState    -> "illegal_state"
*/
package channel
