package encoding_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"

	"github.com/yufj-331/ordershare/internal/encoding"
)

func readAll(t *testing.T, input []byte) string {
	t.Helper()

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got)
}

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	input := "customer_name,product_name\n华为,路由器\n"
	assert.Equal(t, input, readAll(t, []byte(input)))
}

func TestNewUTF8Reader_UTF8BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("id,quantity\nS1,2\n")...)
	assert.Equal(t, "id,quantity\nS1,2\n", readAll(t, input))
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	want := "id,客户\nS1,张三\n"

	encoded, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String(want)
	require.NoError(t, err)

	assert.Equal(t, want, readAll(t, []byte(encoded)))
}

func TestNewUTF8Reader_GB18030(t *testing.T) {
	want := strings.Repeat("客户名称,产品名称,数量,单价\n张三有限公司,不锈钢螺丝,100,2.5\n", 20)

	encoded, err := simplifiedchinese.GB18030.NewEncoder().String(want)
	require.NoError(t, err)

	assert.Equal(t, want, readAll(t, []byte(encoded)))
}
