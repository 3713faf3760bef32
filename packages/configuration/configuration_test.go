package configuration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testParameters struct {
	Directory     string        `default:"ledgerdb" usage:"path to the database folder"`
	InMemory      bool          `default:"false" usage:"keep the database in memory"`
	Wallets       int           `default:"10" usage:"number of wallets"`
	StartSlot     uint64        `name:"startSlot" default:"0" usage:"first slot"`
	Funds         int64         `default:"1000" usage:"lovelace per wallet"`
	FailureRatio  float64       `default:"0.5" usage:"share of invalid transactions"`
	SlotDuration  time.Duration `default:"1s" usage:"duration of a slot"`
	MetricsServer struct {
		BindAddress string `default:"127.0.0.1:9311" usage:"bind address of the metrics server"`
	}
}

func TestDefineParameters(t *testing.T) {
	parameters := &testParameters{}
	configuration := New("test")
	configuration.Define("simulator", parameters)

	for _, name := range []string{"simulator.directory", "simulator.inMemory", "simulator.wallets", "simulator.startSlot", "simulator.funds", "simulator.failureRatio", "simulator.slotDuration", "simulator.metricsServer.bindAddress"} {
		assert.NotNil(t, configuration.FlagSet().Lookup(name), name)
	}

	require.NoError(t, configuration.Load(nil))
	assert.Equal(t, "ledgerdb", parameters.Directory)
	assert.False(t, parameters.InMemory)
	assert.Equal(t, 10, parameters.Wallets)
	assert.Equal(t, int64(1000), parameters.Funds)
	assert.Equal(t, 0.5, parameters.FailureRatio)
	assert.Equal(t, time.Second, parameters.SlotDuration)
	assert.Equal(t, "127.0.0.1:9311", parameters.MetricsServer.BindAddress)
}

func TestConfiguration_Load(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(configFile, []byte(`{
		"simulator": {
			"wallets": 3,
			"funds": 7,
			"slotDuration": "250ms",
			"metricsServer": {"bindAddress": "0.0.0.0:1234"}
		}
	}`), 0o600))
	t.Setenv("TEST_SIMULATOR_FUNDS", "9")

	parameters := &testParameters{}
	configuration := New("test")
	configuration.Define("simulator", parameters)

	require.NoError(t, configuration.Load([]string{"--config", configFile, "--simulator.wallets=5", "--simulator.startSlot=42"}))
	assert.Equal(t, 5, parameters.Wallets)
	assert.Equal(t, uint64(42), parameters.StartSlot)
	assert.Equal(t, int64(9), parameters.Funds)
	assert.Equal(t, 250*time.Millisecond, parameters.SlotDuration)
	assert.Equal(t, "0.0.0.0:1234", parameters.MetricsServer.BindAddress)
	assert.Equal(t, "ledgerdb", parameters.Directory)
}

func TestConfiguration_LoadFailsForMissingConfigFile(t *testing.T) {
	configuration := New("test")
	configuration.Define("simulator", &testParameters{})

	assert.Error(t, configuration.Load([]string{"--config", filepath.Join(t.TempDir(), "missing.json")}))
}

func TestLowerCamelCase(t *testing.T) {
	assert.Equal(t, "inMemory", lowerCamelCase("InMemory"))
	assert.Equal(t, "utxoSet", lowerCamelCase("UTXOSet"))
	assert.Equal(t, "id", lowerCamelCase("ID"))
	assert.Equal(t, "already", lowerCamelCase("already"))
}
