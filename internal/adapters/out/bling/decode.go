package bling

import (
	"strconv"
	"strings"
)

// The hub's API answers with several historical payload shapes: the order list
// may live under "data" or "retorno"/"pedidos", each entry may be wrapped in a
// "pedido" envelope, and most fields go by two or three alternative names.
// The helpers below probe the alternatives in order and normalize the result,
// so the rest of the adapter works on a single shape.

// payload is one decoded JSON object.
type payload map[string]any

// object returns the first nested object found under the given keys.
func (p payload) object(keys ...string) payload {
	for _, key := range keys {
		if nested, ok := p[key].(map[string]any); ok {
			return payload(nested)
		}
	}
	return nil
}

// objects returns the first list of objects found under the given keys.
func (p payload) objects(keys ...string) []payload {
	for _, key := range keys {
		raw, ok := p[key].([]any)
		if !ok {
			continue
		}
		items := make([]payload, 0, len(raw))
		for _, entry := range raw {
			if obj, ok := entry.(map[string]any); ok {
				items = append(items, payload(obj))
			}
		}
		return items
	}
	return nil
}

// text returns the first non-empty string value found under the given keys.
// Numeric identifiers are rendered as their decimal text.
func (p payload) text(keys ...string) string {
	for _, key := range keys {
		switch v := p[key].(type) {
		case string:
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				return trimmed
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

// number returns the first numeric value found under the given keys. Numbers
// that arrive as strings are parsed.
func (p payload) number(keys ...string) (float64, bool) {
	for _, key := range keys {
		switch v := p[key].(type) {
		case float64:
			return v, true
		case string:
			if parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return parsed, true
			}
		}
	}
	return 0, false
}

// unwrapOrder strips the optional "pedido" envelope around an order entry.
func unwrapOrder(p payload) payload {
	if inner := p.object("pedido"); inner != nil {
		return inner
	}
	return p
}

// orderEntries extracts the order list from a listing response, whichever
// shape it arrived in.
func orderEntries(body payload) []payload {
	if entries := body.objects("data"); entries != nil {
		return entries
	}
	if wrapper := body.object("retorno"); wrapper != nil {
		return wrapper.objects("pedidos")
	}
	return body.objects("retorno")
}

// orderDetailBody extracts the single order object from a detail response.
func orderDetailBody(body payload) payload {
	if entries := body.objects("data", "retorno"); len(entries) > 0 {
		return unwrapOrder(entries[0])
	}
	if obj := body.object("data", "retorno"); obj != nil {
		return unwrapOrder(obj)
	}
	return unwrapOrder(body)
}

// situationID digs the order's situation identifier out of either the nested
// "situacao" object or one of the flat aliases.
func situationID(entry payload) (int, bool) {
	if situation := entry.object("situacao"); situation != nil {
		if id, ok := situation.number("id", "Id", "ID"); ok {
			return int(id), true
		}
		return 0, false
	}
	if id, ok := entry.number("situacaoId", "situacao_id", "idSituacao", "id_situacao"); ok {
		return int(id), true
	}
	return 0, false
}

// storeRef extracts the marketplace-side order number, which may live inside
// the "data" sub-object or directly on the order.
func storeRef(entry payload) string {
	if data := entry.object("data"); data != nil {
		if ref := data.text("numeroLoja", "numero_loja"); ref != "" {
			return ref
		}
	}
	return entry.text("numeroLoja", "numero_loja")
}

// trackingCode prefers the transport block's code and falls back to the first
// volume's code, joining multiple volumes with a comma.
func trackingCode(entry payload, transport payload) string {
	if transport != nil {
		if code := transport.text("codigoRastreamento", "codigo_rastreamento"); code != "" {
			return code
		}
	}

	var codes []string
	for _, volume := range entry.objects("volumes") {
		if code := volume.text("codigoRastreamento", "codigo_rastreamento"); code != "" {
			codes = append(codes, code)
		}
	}
	return strings.Join(codes, ", ")
}
