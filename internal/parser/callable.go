package parser

import (
	"fmt"

	"girgen/internal/diag"
	"girgen/internal/gir"
	"girgen/internal/model"
)

func parseDirection(v string) (model.Direction, error) {
	switch v {
	case "", "in":
		return model.DirectionIn, nil
	case "out":
		return model.DirectionOut, nil
	case "inout":
		return model.DirectionInOut, nil
	}
	return 0, diag.Malformedf("unknown direction %q", v)
}

func parseTransfer(v string) (model.Transfer, error) {
	switch v {
	case "", "none":
		return model.TransferNothing, nil
	case "container":
		return model.TransferContainer, nil
	case "full":
		return model.TransferEverything, nil
	}
	return 0, diag.Malformedf("unknown transfer-ownership %q", v)
}

func parseScope(v string) (model.Scope, error) {
	switch v {
	case "":
		return model.ScopeInvalid, nil
	case "call":
		return model.ScopeCall, nil
	case "async":
		return model.ScopeAsync, nil
	case "notified":
		return model.ScopeNotified, nil
	}
	return 0, diag.Malformedf("unknown scope %q", v)
}

// parseArg decodes one <parameter> element.
func parseArg(ctx *Context, el *gir.Element) (model.Arg, error) {
	var arg model.Arg
	arg.Name = el.Attr("name")
	if el.Child("varargs") != nil {
		return arg, diag.Unsupportedf("variadic argument %s", arg.Name)
	}
	dir, err := parseDirection(el.Attr("direction"))
	if err != nil {
		return arg, err
	}
	transfer, err := parseTransfer(el.Attr("transfer-ownership"))
	if err != nil {
		return arg, err
	}
	scope, err := parseScope(el.Attr("scope"))
	if err != nil {
		return arg, err
	}
	nullable, err := boolAttr(el, "nullable", false)
	if err != nil {
		return arg, err
	}
	allowNone, err := boolAttr(el, "allow-none", false)
	if err != nil {
		return arg, err
	}
	closure, err := intAttr(el, "closure", -1)
	if err != nil {
		return arg, err
	}
	destroy, err := intAttr(el, "destroy", -1)
	if err != nil {
		return arg, err
	}
	t, err := queryType(ctx, el)
	if err != nil {
		return arg, fmt.Errorf("argument %s: %w", arg.Name, err)
	}
	arg.Type = t
	arg.Direction = dir
	arg.Transfer = transfer
	arg.Scope = scope
	arg.MayBeNull = nullable || allowNone
	arg.Closure = closure
	arg.Destroy = destroy
	return arg, nil
}

// parseCallable decodes the calling contract of a function, method,
// callback or signal element. The implicit receiver of methods is not an
// argument here; the adapter prepends it at emission time.
func parseCallable(ctx *Context, el *gir.Element) (model.Callable, error) {
	var c model.Callable

	ret := el.Child("return-value")
	if ret == nil {
		return c, diag.Malformedf("callable %s has no return-value element", el.Attr("name"))
	}
	rt, err := queryOptionalType(ctx, ret)
	if err != nil {
		return c, fmt.Errorf("return value: %w", err)
	}
	c.ReturnType = rt
	if c.ReturnTransfer, err = parseTransfer(ret.Attr("transfer-ownership")); err != nil {
		return c, err
	}
	nullable, err := boolAttr(ret, "nullable", false)
	if err != nil {
		return c, err
	}
	allowNone, err := boolAttr(ret, "allow-none", false)
	if err != nil {
		return c, err
	}
	c.ReturnMayBeNull = nullable || allowNone

	if c.Throws, err = boolAttr(el, "throws", false); err != nil {
		return c, err
	}

	if params := el.Child("parameters"); params != nil {
		for _, p := range params.Children("parameter") {
			arg, err := parseArg(ctx, p)
			if err != nil {
				return c, err
			}
			c.Args = append(c.Args, arg)
		}
	}
	// Positional cross-references are validated by the normalizer at
	// emission time, after any receiver adjustment.
	return c, nil
}
