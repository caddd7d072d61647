package protocol

import (
	"fmt"
	"strconv"
	"strings"
)

// The following f_* helpers build the exact Response bodies §6 specifies.
// Names echo the original ksp.rs formatting functions (f_pong, f_ok, ...).

func fPong() string { return "PONG" }

func fOK() string { return "OK" }

func fNil() string { return "(nil)" }

func fNoOp() string { return "\x00" }

func fEmpty() string { return "(empty list or set)" }

func fInt(v int64) string { return "(integer) " + strconv.FormatInt(v, 10) }

func fUint(v uint64) string { return "(integer) " + strconv.FormatUint(v, 10) }

func fStr(s string) string { return `"` + s + `"` }

func fVec(members []string) string {
	var b strings.Builder
	for i, m := range members {
		fmt.Fprintf(&b, "%d) %s\n", i+1, m)
	}
	return b.String()
}

func fErr(msg string) string { return "(error) " + msg }

// The Resp* constructors below are the public surface executor.Executor
// uses to build a Response for each outcome in §6's response table.

func RespPong() Response       { return Response{Body: fPong()} }
func RespOK() Response         { return Response{Body: fOK()} }
func RespNil() Response        { return Response{Body: fNil()} }
func RespNoOp() Response       { return Response{Body: fNoOp()} }
func RespEmpty() Response      { return Response{Body: fEmpty()} }
func RespInt(v int64) Response { return Response{Body: fInt(v)} }
func RespUint(v uint64) Response {
	return Response{Body: fUint(v)}
}
func RespStr(s string) Response         { return Response{Body: fStr(s)} }
func RespVec(members []string) Response { return Response{Body: fVec(members)} }
func RespErr(msg string) Response       { return Response{Body: fErr(msg)} }
