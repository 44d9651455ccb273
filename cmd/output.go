package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/s0up4200/vendctl/entity"
)

const (
	formatJSON  = "json"
	formatYAML  = "yaml"
	formatTable = "table"
)

func parseFormat(format string) (string, error) {
	switch f := strings.ToLower(format); f {
	case formatJSON, formatYAML, formatTable:
		return f, nil
	default:
		return "", fmt.Errorf("invalid output format %q: must be json, yaml or table", format)
	}
}

// render writes v in format. columns pick the table fields; when empty
// the scalar keys of the first item are used.
func render(w io.Writer, format string, v entity.Value, columns []string) error {
	format, err := parseFormat(format)
	if err != nil {
		return err
	}

	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(yamlNode(v)); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case formatTable:
		return renderTable(w, v, columns)
	default:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
}

func renderItems(w io.Writer, format string, items []*entity.Properties, columns []string) error {
	values := make([]entity.Value, len(items))
	for i, item := range items {
		values[i] = entity.ObjectValue(item)
	}
	return render(w, format, entity.ArrayValue(values...), columns)
}

// yamlNode converts v keeping object key order.
func yamlNode(v entity.Value) *yaml.Node {
	switch v.Kind() {
	case entity.KindObject:
		obj, _ := v.AsObject()
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, key := range obj.Keys() {
			val, _ := obj.Get(key)
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
				yamlNode(val),
			)
		}
		return node
	case entity.KindArray:
		arr, _ := v.AsArray()
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range arr {
			node.Content = append(node.Content, yamlNode(item))
		}
		return node
	case entity.KindString:
		s, _ := v.AsString()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
	case entity.KindNumber:
		text, _ := v.Text()
		tag := "!!int"
		if strings.ContainsAny(text, ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: text}
	case entity.KindBool:
		text, _ := v.Text()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: text}
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

func renderTable(w io.Writer, v entity.Value, columns []string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if obj, ok := v.AsObject(); ok {
		fmt.Fprintln(tw, "KEY\tVALUE")
		for _, key := range obj.Keys() {
			val, _ := obj.Get(key)
			fmt.Fprintf(tw, "%s\t%s\n", key, cell(val))
		}
		return tw.Flush()
	}

	arr, ok := v.AsArray()
	if !ok {
		fmt.Fprintln(tw, cell(v))
		return tw.Flush()
	}

	rows := make([]*entity.Properties, 0, len(arr))
	for _, item := range arr {
		if obj, ok := item.AsObject(); ok {
			rows = append(rows, obj)
		}
	}
	if len(columns) == 0 && len(rows) > 0 {
		columns = scalarKeys(rows[0])
	}

	headers := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = strings.ToUpper(c)
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))

	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, c := range columns {
			val, _ := row.Get(c)
			cells[i] = cell(val)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func scalarKeys(p *entity.Properties) []string {
	var keys []string
	for _, key := range p.Keys() {
		val, _ := p.Get(key)
		if val.Kind() != entity.KindObject && val.Kind() != entity.KindArray {
			keys = append(keys, key)
		}
	}
	return keys
}

func cell(v entity.Value) string {
	switch v.Kind() {
	case entity.KindNull:
		return ""
	case entity.KindObject, entity.KindArray:
		data, err := json.Marshal(v)
		if err != nil {
			return "?"
		}
		return string(data)
	default:
		text, _ := v.Text()
		return text
	}
}
