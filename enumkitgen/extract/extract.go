package extract

import (
	"strings"

	"github.com/broady/enumkit"
	"github.com/broady/enumkit/enumkitgen/diag"
	"github.com/broady/enumkit/enumkitgen/model"
)

// Snapshot builds the snapshot of d.
//
// Declaration-level failures (unsupported underlying type, missing package)
// return ok == false. A member whose value cannot be resolved is reported and
// left out; the declaration is skipped only if every member failed.
func Snapshot(d Decl) (snap model.Snapshot, diags diag.List, ok bool) {
	kind, valid := enumkit.ParseKind(d.Underlying)
	if !valid {
		diags.Add(diag.InvalidUnderlyingTypeAt(d.Pos, d.Name, d.Underlying))
		return model.Snapshot{}, diags, false
	}
	if d.Namespace == "" {
		diags.Add(diag.MissingNamespaceAt(d.Pos, d.Name))
		return model.Snapshot{}, diags, false
	}

	comparison := enumkit.Ordinal
	if d.Comparison != "" {
		c, known := enumkit.ParseComparison(d.Comparison)
		if !known {
			diags.Add(diag.Warnf(diag.InvalidDirective, d.Pos,
				"enum %s: unknown comparison %q, using %s", d.Name, d.Comparison, enumkit.Ordinal))
		}
		comparison = c
	}

	members := make([]model.Member, 0, len(d.Members))
	firstByValue := make(map[uint64]string, len(d.Members))
	for _, md := range d.Members {
		if md.Identifier == "" {
			diags.Add(diag.UnresolvableSymbolAt(md.Pos, "unnamed member of "+d.Name))
			continue
		}
		v, resolved := model.FromConstant(kind, md.Value)
		if !resolved {
			diags.Add(diag.UnresolvedMemberValueAt(md.Pos, md.Identifier))
			continue
		}

		m := model.NewMember(md.Identifier, v)
		if md.HasCustomName {
			if name := SanitizeName(md.CustomName); name != "" {
				m = model.NewCustomMember(md.Identifier, name, v)
			} else {
				diags.Add(diag.Warnf(diag.InvalidDirective, md.Pos,
					"enum member %s: empty display name ignored", md.Identifier))
			}
		}

		if first, dup := firstByValue[v.Bits()]; dup {
			diags.Add(diag.Infof(diag.DuplicateValue, md.Pos,
				"enum member %s has the same value as %s; String reports %s", md.Identifier, first, first))
		} else {
			firstByValue[v.Bits()] = md.Identifier
		}
		members = append(members, m)
	}
	if len(d.Members) > 0 && len(members) == 0 {
		return model.Snapshot{}, diags, false
	}

	return model.Snapshot{
		Namespace:   d.Namespace,
		PackageName: d.PackageName,
		Name:        d.Name,
		IsFlags:     d.Flags,
		Kind:        kind,
		Comparison:  comparison,
		Members:     model.NewSeq(members...),
	}, diags, true
}

// SanitizeName normalizes a custom display name: invalid UTF-8 is replaced
// with U+FFFD and surrounding whitespace is dropped. Quotes and other special
// characters are kept as written; the emitter quotes every name as a Go
// string literal.
func SanitizeName(s string) string {
	return strings.TrimSpace(strings.ToValidUTF8(s, "\uFFFD"))
}
