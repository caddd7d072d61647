package protocol

import "strconv"

// Parse converts a raw byte buffer into a validated Request by tokenizing it
// and then checking per-operator arity and coercion rules. It never returns
// a Go error: malformed input is represented as Request{Kind: Invalid}.
func Parse(buf []byte) Request {
	lexed, err := Tokenize(buf)
	if err != nil {
		req := invalid("Input is not valid UTF-8")
		req.Fatal = true
		return req
	}
	return parseTokens(lexed)
}

func parseTokens(lexed LexResult) Request {
	argv := lexed.Argv

	switch lexed.Op {
	case OpNoOp:
		return Request{Kind: NoOp}
	case OpUnrecognized:
		return invalid("Unrecognized operator")
	case OpQuit:
		if req, ok := nullary(argv, Quit); ok {
			return req
		}
	case OpPing:
		if req, ok := nullary(argv, Ping); ok {
			return req
		}

	case OpGet:
		if req, ok := keyOnly(argv, Get); ok {
			return req
		}
	case OpIncr:
		if req, ok := keyOnly(argv, Incr); ok {
			return req
		}
	case OpDecr:
		if req, ok := keyOnly(argv, Decr); ok {
			return req
		}
	case OpLPop:
		if req, ok := keyOnly(argv, LPop); ok {
			return req
		}
	case OpRPop:
		if req, ok := keyOnly(argv, RPop); ok {
			return req
		}
	case OpSMembers:
		if req, ok := keyOnly(argv, SMembers); ok {
			return req
		}

	case OpSet:
		if req, ok := keyVal(argv, Set); ok {
			return req
		}
	case OpLPush:
		if req, ok := keyVal(argv, LPush); ok {
			return req
		}
	case OpRPush:
		if req, ok := keyVal(argv, RPush); ok {
			return req
		}
	case OpSAdd:
		if req, ok := keyVal(argv, SAdd); ok {
			return req
		}
	case OpSRem:
		if req, ok := keyVal(argv, SRem); ok {
			return req
		}
	case OpSIsMember:
		if req, ok := keyVal(argv, SIsMember); ok {
			return req
		}
	case OpHGet:
		if req, ok := keyField(argv, HGet); ok {
			return req
		}
	case OpHDel:
		if req, ok := keyField(argv, HDel); ok {
			return req
		}

	case OpIncrBy:
		return parseDeltaOp(IncrBy, argv)
	case OpDecrBy:
		return parseDeltaOp(DecrBy, argv)

	case OpHSet:
		if req, ok := keyFieldVal(argv, HSet); ok {
			return req
		}

	default:
		return invalid("Unrecognized operator")
	}

	return arityError(argv, lexed.Op)
}

// arityError reconstructs the "Expected N, got M" message for an operator
// whose dedicated helper already rejected it.
func arityError(argv []string, op Operator) Request {
	want := map[Operator]int{
		OpQuit: 0, OpPing: 0,
		OpGet: 1, OpIncr: 1, OpDecr: 1, OpLPop: 1, OpRPop: 1, OpSMembers: 1,
		OpSet: 2, OpLPush: 2, OpRPush: 2, OpSAdd: 2, OpSRem: 2, OpSIsMember: 2,
		OpHGet: 2, OpHDel: 2,
		OpHSet: 3,
	}[op]
	return invalid("Unexpected number of arguments. Expected %d, got %d", want, len(argv))
}

func nullary(argv []string, kind RequestKind) (Request, bool) {
	if len(argv) != 0 {
		return Request{}, false
	}
	return Request{Kind: kind}, true
}

func keyOnly(argv []string, kind RequestKind) (Request, bool) {
	if len(argv) != 1 {
		return Request{}, false
	}
	return Request{Kind: kind, Key: argv[0]}, true
}

func keyVal(argv []string, kind RequestKind) (Request, bool) {
	if len(argv) != 2 {
		return Request{}, false
	}
	return Request{Kind: kind, Key: argv[0], Val: argv[1]}, true
}

func keyField(argv []string, kind RequestKind) (Request, bool) {
	if len(argv) != 2 {
		return Request{}, false
	}
	return Request{Kind: kind, Key: argv[0], Field: argv[1]}, true
}

func keyFieldVal(argv []string, kind RequestKind) (Request, bool) {
	if len(argv) != 3 {
		return Request{}, false
	}
	return Request{Kind: kind, Key: argv[0], Field: argv[1], Val: argv[2]}, true
}

func parseDeltaOp(kind RequestKind, argv []string) Request {
	if len(argv) != 2 {
		return invalid("Unexpected number of arguments. Expected %d, got %d", 2, len(argv))
	}
	delta, err := strconv.ParseInt(argv[1], 10, 64)
	if err != nil {
		return invalid("Value to increment/decrement by is a non-integer")
	}
	return Request{Kind: kind, Key: argv[0], Delta: delta}
}
