package database

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() ScyllaKeyspaceConfig {
	return ScyllaKeyspaceConfig{
		Hosts:       []string{"127.0.0.1"},
		Keyspace:    "ks_orders",
		Username:    "orders_role",
		Password:    "secret",
		Timeout:     5 * time.Second,
		NumConns:    20,
		Consistency: gocql.Quorum,
	}
}

// writeTestCACert génère un CA auto-signé et l'écrit en PEM.
func writeTestCACert(t *testing.T) string {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	template := x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "scylla-test-ca"},
		NotBefore:             time.Now(),
		NotAfter:              time.Now().Add(time.Hour),
		IsCA:                  true,
		KeyUsage:              x509.KeyUsageCertSign,
		BasicConstraintsValid: true,
	}
	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "ca.pem")
	data := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestCreateScyllaCluster(t *testing.T) {
	config := testConfig()

	cluster, err := createScyllaCluster(config)
	require.NoError(t, err)

	assert.Equal(t, "ks_orders", cluster.Keyspace)
	assert.Equal(t, gocql.Quorum, cluster.Consistency)
	assert.Equal(t, 20, cluster.NumConns)
	assert.Equal(t, gocql.PasswordAuthenticator{Username: "orders_role", Password: "secret"}, cluster.Authenticator)
	assert.Nil(t, cluster.SslOpts, "pas de SSL sans configuration")
}

func TestCreateScyllaCluster_SSL(t *testing.T) {
	config := testConfig()
	config.SSLEnabled = true
	config.CACertPath = writeTestCACert(t)

	cluster, err := createScyllaCluster(config)
	require.NoError(t, err)

	require.NotNil(t, cluster.SslOpts, "le cluster doit porter les options SSL")
	require.NotNil(t, cluster.SslOpts.Config)
	assert.NotNil(t, cluster.SslOpts.Config.RootCAs, "le CA chargé doit être attaché au pool")
}

func TestCreateScyllaCluster_SSLMissingCAFile(t *testing.T) {
	config := testConfig()
	config.SSLEnabled = true
	config.CACertPath = filepath.Join(t.TempDir(), "absent.pem")

	_, err := createScyllaCluster(config)
	assert.Error(t, err)
}

func TestCreateScyllaCluster_SSLInvalidCAFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ca.pem")
	require.NoError(t, os.WriteFile(path, []byte("pas un certificat"), 0o600))

	config := testConfig()
	config.SSLEnabled = true
	config.CACertPath = path

	_, err := createScyllaCluster(config)
	assert.Error(t, err)
}
