package evaluator

type ObjectType string

const (
	INTEGER_OBJ       = "INTEGER"
	FLOAT_OBJ         = "FLOAT"
	STRING_OBJ        = "STRING"
	BOOLEAN_OBJ       = "BOOLEAN"
	NIL_OBJ           = "NIL"
	ERROR_OBJ         = "ERROR"
	FUNCTION_OBJ      = "FUNCTION"
	BUILTIN_OBJ       = "BUILTIN"
	DATA_INSTANCE_OBJ = "DATA_INSTANCE"
	TUPLE_OBJ         = "TUPLE"
	LIST_OBJ          = "LIST"
	MONAD_OBJ         = "MONAD"
	HOST_OBJ          = "HOST"
)

type Object interface {
	Type() ObjectType
	Inspect() string
}

// TypeName is the user-facing name of obj's type, used in error messages.
func TypeName(obj Object) string {
	switch o := obj.(type) {
	case nil:
		return "nothing"
	case *Integer:
		return "Int"
	case *Float:
		return "Float"
	case *String:
		return "String"
	case *Boolean:
		return "Bool"
	case *Nil:
		return "Nil"
	case *Tuple:
		return "Tuple"
	case *List:
		return "List"
	case *DataInstance:
		return o.TypeName
	case *Function, *Builtin:
		return "Function"
	case *MonadObject:
		return "Monad"
	case *HostObject:
		return "Host"
	}
	return string(obj.Type())
}
