package executor

import (
	"github.com/lukluk/kiba/internal/protocol"
	"github.com/lukluk/kiba/internal/store"
)

// dispatch calls the corresponding Store operation for req.Kind and builds
// the Response body prescribed by §6. Reporting to the metrics observer is
// done by Execute, after the body has been built.
func (e *Executor) dispatch(req protocol.Request) string {
	switch req.Kind {
	case protocol.Ping:
		return protocol.RespPong().Body

	case protocol.Get:
		val, ok, err := e.store.Get(req.Key)
		return e.strOrNil(val, ok, err)

	case protocol.Set:
		_, _, err := e.store.Set(req.Key, req.Val)
		if err != nil {
			return asErr(err)
		}
		return protocol.RespOK().Body

	case protocol.Incr:
		return e.intResult(e.store.Incr(req.Key))
	case protocol.Decr:
		return e.intResult(e.store.Decr(req.Key))
	case protocol.IncrBy:
		return e.intResult(e.store.IncrBy(req.Key, req.Delta))
	case protocol.DecrBy:
		return e.intResult(e.store.DecrBy(req.Key, req.Delta))

	case protocol.LPush:
		return e.uintResult(e.store.LPush(req.Key, req.Val))
	case protocol.RPush:
		return e.uintResult(e.store.RPush(req.Key, req.Val))
	case protocol.LPop:
		val, ok, err := e.store.LPop(req.Key)
		return e.strOrNil(val, ok, err)
	case protocol.RPop:
		val, ok, err := e.store.RPop(req.Key)
		return e.strOrNil(val, ok, err)

	case protocol.SAdd:
		return e.uintResult(e.store.SAdd(req.Key, req.Val))
	case protocol.SRem:
		return e.uintResult(e.store.SRem(req.Key, req.Val))
	case protocol.SIsMember:
		member, err := e.store.SIsMember(req.Key, req.Val)
		if err != nil {
			return asErr(err)
		}
		if member {
			return protocol.RespUint(1).Body
		}
		return protocol.RespUint(0).Body
	case protocol.SMembers:
		members, err := e.store.SMembers(req.Key)
		if err != nil {
			return asErr(err)
		}
		if len(members) == 0 {
			return protocol.RespEmpty().Body
		}
		return protocol.RespVec(members).Body

	case protocol.HGet:
		val, ok, err := e.store.HGet(req.Key, req.Field)
		return e.strOrNil(val, ok, err)
	case protocol.HSet:
		_, hadPrev, err := e.store.HSet(req.Key, req.Field, req.Val)
		if err != nil {
			return asErr(err)
		}
		if hadPrev {
			return protocol.RespUint(0).Body
		}
		return protocol.RespUint(1).Body
	case protocol.HDel:
		return e.uintResult(e.store.HDel(req.Key, req.Field))

	case protocol.NoOp:
		return protocol.RespNoOp().Body
	case protocol.Invalid:
		return protocol.RespErr(req.Err).Body
	case protocol.Quit:
		// The connection handler intercepts Quit before it ever reaches the
		// executor (§4.5); reaching here is not a wire-visible case.
		return protocol.RespOK().Body
	}

	return protocol.RespErr("Unrecognized operator").Body
}

func (e *Executor) strOrNil(val string, ok bool, err error) string {
	if err != nil {
		return asErr(err)
	}
	if !ok {
		return protocol.RespNil().Body
	}
	return protocol.RespStr(val).Body
}

func (e *Executor) intResult(v int64, err error) string {
	if err != nil {
		return asErr(err)
	}
	return protocol.RespInt(v).Body
}

func (e *Executor) uintResult(v uint64, err error) string {
	if err != nil {
		return asErr(err)
	}
	return protocol.RespUint(v).Body
}

func asErr(err error) string {
	if se, ok := err.(*store.Error); ok {
		return protocol.RespErr(se.Message).Body
	}
	return protocol.RespErr(err.Error()).Body
}

// opName returns the metrics label for a request kind. Meta-variants that
// never reach a store operation are labeled distinctly from data commands.
func opName(kind protocol.RequestKind) string {
	switch kind {
	case protocol.NoOp:
		return "noop"
	case protocol.Invalid:
		return "invalid"
	case protocol.Quit:
		return "quit"
	case protocol.Ping:
		return "ping"
	case protocol.Get:
		return "get"
	case protocol.Set:
		return "set"
	case protocol.Incr:
		return "incr"
	case protocol.Decr:
		return "decr"
	case protocol.IncrBy:
		return "incrby"
	case protocol.DecrBy:
		return "decrby"
	case protocol.LPush:
		return "lpush"
	case protocol.RPush:
		return "rpush"
	case protocol.LPop:
		return "lpop"
	case protocol.RPop:
		return "rpop"
	case protocol.SAdd:
		return "sadd"
	case protocol.SRem:
		return "srem"
	case protocol.SIsMember:
		return "sismember"
	case protocol.SMembers:
		return "smembers"
	case protocol.HGet:
		return "hget"
	case protocol.HSet:
		return "hset"
	case protocol.HDel:
		return "hdel"
	default:
		return "unknown"
	}
}
