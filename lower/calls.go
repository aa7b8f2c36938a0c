package lower

import (
	"github.com/gogpu/glslspv/ast"
	"github.com/gogpu/glslspv/spirv"
)

// paramQualifier returns the storage qualifier of parameter i of a
// call. Calls without a qualifier list pass by value.
func paramQualifier(call *ast.Aggregate, i int) ast.Storage {
	if i < len(call.ParamQualifiers) {
		return call.ParamQualifiers[i]
	}
	return ast.StorageIn
}

// userFunctionCall lowers a call to a function of the program. Every
// argument is evaluated once, left to right, before any copy-in.
// Arguments that are not const in are copied into a temporary, and out
// arguments are written back after the call.
func (s *Session) userFunctionCall(call *ast.Aggregate) spirv.ID {
	function, ok := s.functionMap[call.Name]
	if !ok {
		return spirv.NoResult
	}
	args := call.Sequence

	// Evaluate the arguments. L-values are kept as access chains;
	// by-value arguments are loaded here.
	chains := make([]spirv.AccessChain, len(args))
	values := make([]spirv.ID, len(args))
	for i, arg := range args {
		s.b.ClearAccessChain()
		ast.Walk(s, arg)
		t := arg.NodeType()
		if passByPointer(t) || paramQualifier(call, i) != ast.StorageConstReadOnly {
			chains[i] = s.b.GetAccessChain()
		} else {
			values[i] = s.accessChainLoad(t)
		}
	}

	// Build the actual operands.
	params := make([]spirv.ID, len(args))
	operands := make([]spirv.ID, len(args))
	for i, arg := range args {
		t := arg.NodeType()
		q := paramQualifier(call, i)
		switch {
		case passByPointer(t):
			s.b.SetAccessChain(chains[i])
			operands[i] = s.b.AccessChainGetLValue()
		case q == ast.StorageConstReadOnly:
			operands[i] = values[i]
		default:
			paramType := s.b.DerefTypeID(function.Param(i))
			params[i] = s.b.CreateVariable(spirv.StorageClassFunction, paramType, "param")
			if q == ast.StorageIn || q == ast.StorageInOut {
				s.b.SetAccessChain(chains[i])
				value := s.accessChainLoad(t)
				s.b.ClearAccessChain()
				s.b.SetAccessChainLValue(params[i])
				s.multiTypeStore(t, value)
			}
			operands[i] = params[i]
		}
	}

	s.at(call)
	result := s.b.CreateFunctionCall(function, operands)
	s.b.SetPrecision(result, precisionDecoration(call.Type))

	// Copy out.
	for i, arg := range args {
		q := paramQualifier(call, i)
		if passByPointer(arg.NodeType()) || (q != ast.StorageOut && q != ast.StorageInOut) {
			continue
		}
		value := s.b.CreateLoad(params[i])
		s.b.SetAccessChain(chains[i])
		s.multiTypeStore(arg.NodeType(), value)
	}
	return result
}
