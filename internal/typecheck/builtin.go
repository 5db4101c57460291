package typecheck

// builtinCheckerLookup is the built-in lookup provider, always present
// and always consulted last. It declines instance descriptors so the
// dispatch core's plain instance fallback stays in charge of them, which
// keeps extension providers able to claim concrete types first.
func builtinCheckerLookup(origin Origin, params []any, metadata []any) Checker {
	switch origin {
	case OriginNone:
		return checkNone
	case OriginFloat, OriginComplex:
		return checkNumber
	case OriginBytesLike:
		return checkBytesLike
	case OriginList:
		return checkList
	case OriginSequence:
		return checkSequence
	case OriginSet, OriginFrozenSet:
		return checkSet
	case OriginDict, OriginMapping, OriginMutableMapping:
		return checkMapping
	case OriginTuple:
		return checkTuple
	case OriginNamedTuple:
		return checkNamedTuple
	case OriginRecord:
		return checkRecord
	case OriginUnion, OriginBareUnion:
		return checkUnion
	case OriginLiteral:
		return checkLiteral
	case OriginLiteralString:
		return checkLiteralString
	case OriginTypeGuard:
		return checkTypeGuard
	case OriginInterface:
		return checkProtocol
	case OriginCallable:
		return checkCallable
	case OriginReader, OriginWriter, OriginReadWriter:
		return checkIO
	case OriginTypeVar:
		return checkTypeVar
	case OriginParamSpec:
		return checkParamSpec
	case OriginAlias:
		return checkAlias
	case OriginSelf:
		return checkSelf
	case OriginSubclassOf:
		return checkClass
	case OriginNotRequired:
		return checkNotRequired
	}
	return nil
}
