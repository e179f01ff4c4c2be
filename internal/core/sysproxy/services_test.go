package sysproxy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "setproxy/pkg/errors"
)

const listOutput = `An asterisk (*) denotes that a network service is disabled.
Wi-Fi
*Thunderbolt Bridge
iPhone USB

`

func TestParseServices(t *testing.T) {
	services := ParseServices(listOutput)

	assert.Equal(t, []string{"Wi-Fi", "iPhone USB"}, services)
}

func TestParseServicesEmpty(t *testing.T) {
	assert.Nil(t, ParseServices(""))
	assert.Nil(t, ParseServices("An asterisk (*) denotes that a network service is disabled.\n"))
}

func TestListServices(t *testing.T) {
	restore := runTool
	defer func() { runTool = restore }()
	runTool = func(ctx context.Context, args ...string) (string, error) {
		require.Equal(t, []string{"-listallnetworkservices"}, args)
		return listOutput, nil
	}

	services, err := ListServices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Wi-Fi", "iPhone USB"}, services)
}

func TestListServicesCommandError(t *testing.T) {
	restore := runTool
	defer func() { runTool = restore }()
	runTool = func(ctx context.Context, args ...string) (string, error) {
		return "some failure\n", errors.New("exit status 1")
	}

	_, err := ListServices(context.Background())
	require.Error(t, err)

	var cmdErr *apperrors.CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, "some failure", cmdErr.Output)
}

func TestListServicesNoServices(t *testing.T) {
	restore := runTool
	defer func() { runTool = restore }()
	runTool = func(ctx context.Context, args ...string) (string, error) {
		return "An asterisk (*) denotes that a network service is disabled.\n*Wi-Fi\n", nil
	}

	_, err := ListServices(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrNoServices)
}

func TestPickService(t *testing.T) {
	services := []string{"Wi-Fi", "iPhone USB"}

	svc, changed := PickService("iPhone USB", services)
	assert.Equal(t, "iPhone USB", svc)
	assert.False(t, changed)

	svc, changed = PickService("Ethernet", services)
	assert.Equal(t, "Wi-Fi", svc)
	assert.True(t, changed)

	svc, changed = PickService("Ethernet", nil)
	assert.Equal(t, "Ethernet", svc)
	assert.False(t, changed)
}
