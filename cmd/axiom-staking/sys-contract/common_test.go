package sys_contract

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingService struct {
	calls int
}

func (s *countingService) Echo(v uint64) uint64 {
	s.calls++
	return v
}

func (s *countingService) Fail() error {
	s.calls++
	return errors.New("rejected")
}

func TestParseAmount(t *testing.T) {
	testcases := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "100", want: "100"},
		{input: " 0x10 ", want: "16"},
		{input: "1000000000000000000000000", want: "1000000000000000000000000"},
		{input: "0", wantErr: true},
		{input: "-1", wantErr: true},
		{input: "1.5", wantErr: true},
		{input: "abc", wantErr: true},
	}
	for _, tc := range testcases {
		amount, err := parseAmount(tc.input)
		if tc.wantErr {
			assert.Error(t, err, tc.input)
			continue
		}
		require.Nil(t, err, tc.input)
		assert.Equal(t, tc.want, amount.String())
	}
}

func TestParseAddress(t *testing.T) {
	_, err := parseAddress("test", "0x123")
	assert.Error(t, err)
	addr, err := parseAddress("test", "0xc7F999b83Af6DF9e67d0a37Ee7e900bF38b3D013")
	require.Nil(t, err)
	assert.Equal(t, "0xc7F999b83Af6DF9e67d0a37Ee7e900bF38b3D013", addr.Hex())
}

func TestQuery(t *testing.T) {
	service := &countingService{}
	server := rpc.NewServer()
	require.Nil(t, server.RegisterName("test", service))
	httpServer := httptest.NewServer(server)
	defer httpServer.Close()
	defer server.Stop()

	client, err := rpc.DialContext(context.Background(), httpServer.URL)
	require.Nil(t, err)
	defer client.Close()

	var res uint64
	require.Nil(t, query(context.Background(), client, &res, "test_echo", uint64(7)))
	assert.EqualValues(t, 7, res)
	assert.Equal(t, 1, service.calls)

	// server side errors are final
	err = query(context.Background(), client, nil, "test_fail")
	assert.Error(t, err)
	assert.Equal(t, 2, service.calls)

	err = send(context.Background(), client, nil, "test_fail")
	assert.Error(t, err)
	assert.Equal(t, 3, service.calls)
}

func TestQuery_Unreachable(t *testing.T) {
	client, err := rpc.DialContext(context.Background(), "http://127.0.0.1:1")
	require.Nil(t, err)
	defer client.Close()

	var res uint64
	assert.Error(t, query(context.Background(), client, &res, "test_echo", uint64(7)))
}
