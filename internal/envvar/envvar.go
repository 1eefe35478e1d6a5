package envvar

const (
	// KasanomaEnv is the environment variable used to determine the environment
	KasanomaEnv = "KASANOMA_ENV"

	// KasanomaVoicesPath is the environment variable used to override the voices directory
	KasanomaVoicesPath = "KASANOMA_VOICES_PATH"

	// KasanomaPiperPath is the environment variable used to override the piper binary
	KasanomaPiperPath = "KASANOMA_PIPER_PATH"

	// KasanomaOutputPath is the environment variable used to override the audio output directory
	KasanomaOutputPath = "KASANOMA_OUTPUT_PATH"

	// KasanomaServerHTTPPort is the environment variable used to determine the HTTP port
	KasanomaServerHTTPPort = "KASANOMA_SERVER_HTTP_PORT"

	// KasanomaServerGRPCPort is the environment variable used to determine the gRPC port
	KasanomaServerGRPCPort = "KASANOMA_SERVER_GRPC_PORT"
)
