package config

// Flag-bound process configuration. Commands read these after cobra
// has parsed the command line.
var Network string

var (
	GasPrice      float64
	ExtraGasPrice float64
	GasLimit      uint64
	ExtraGasLimit uint64

	KeystoreFile     string
	KeystorePassword string

	ArtifactFile string
	RecordFile   string

	ContractAddress string
	RecipientsFile  string
	SuppliedValue   string

	AuditDBPath       string
	NATSURL           string
	NATSSubject       string
	DontWaitToBeMined bool
)

// KeystorePasswordVar is the env var consulted when no terminal is
// available to prompt for the keystore password.
const KeystorePasswordVar = "BASEUTILS_KEYSTORE_PASSWORD"

// PrivateKeyVar holds a raw hex private key that takes precedence
// over any keystore file. Meant for devnets and CI, not mainnet keys.
const PrivateKeyVar = "BASEUTILS_PRIVATE_KEY"
