package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/vendctl/config"
	"github.com/s0up4200/vendctl/entity"
)

func TestParseAssignment(t *testing.T) {
	tests := []struct {
		input   string
		key     string
		want    entity.Value
		wantErr bool
	}{
		{input: "name=Large Mug", key: "name", want: entity.StringValue("Large Mug")},
		{input: "price=14.5", key: "price", want: entity.NumberValue(14.5)},
		{input: "active=false", key: "active", want: entity.BoolValue(false)},
		{input: `code="007"`, key: "code", want: entity.StringValue("007")},
		{input: "note=", key: "note", want: entity.StringValue("")},
		{input: "supplier=null", key: "supplier", want: entity.Value{}},
		{input: "expr=a=b", key: "expr", want: entity.StringValue("a=b")},
		{input: "novalue", wantErr: true},
		{input: "=x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			key, value, err := parseAssignment(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.key, key)
			assert.True(t, tt.want.Equal(value), "got %v", value.Interface())
		})
	}
}

func TestParseCallData(t *testing.T) {
	data, err := parseCallData("get", "")
	require.NoError(t, err)
	assert.Nil(t, data)

	data, err = parseCallData("GET", `{"page_size":10}`)
	require.NoError(t, err)
	props, ok := data.(*entity.Properties)
	require.True(t, ok)
	assert.Equal(t, []string{"page_size"}, props.Keys())

	_, err = parseCallData("get", `[1,2]`)
	assert.Error(t, err)

	data, err = parseCallData("post", `{"name":"Mug"}`)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"name":"Mug"}`), data)

	_, err = parseCallData("post", `{broken`)
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "body.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"from":"file"}`), 0o600))
	data, err = parseCallData("put", "@"+path)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"from":"file"}`), data)
}

func TestResolveFilter(t *testing.T) {
	cfg = &config.Config{Filters: config.FilterConfig{"cheap": "price < 10"}}
	t.Cleanup(func() { cfg = nil })

	// Priority: flag expression wins over preset
	f, err := resolveFilter("price > 100", "cheap")
	require.NoError(t, err)
	assert.Equal(t, "price > 100", f.Expression())

	f, err = resolveFilter("", "Cheap")
	require.NoError(t, err)
	assert.Equal(t, "price < 10", f.Expression())

	f, err = resolveFilter("", "")
	require.NoError(t, err)
	assert.Nil(t, f)

	_, err = resolveFilter("", "missing")
	assert.ErrorContains(t, err, "preset 'missing' not found")

	_, err = resolveFilter("price >", "")
	assert.ErrorContains(t, err, "invalid filter expression")
}
