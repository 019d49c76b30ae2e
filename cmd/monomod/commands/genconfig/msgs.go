package genconfig

// Message constants
const (
	MsgShort   = "Print the default configuration"
	MsgLong    = "Output the default configuration, with every key documented, to stdout or\nwrite it to .monomod.toml in the repository root."
	MsgExample = `  monomod gen-config                  # Output to stdout
  monomod gen-config -w               # Write to ./.monomod.toml
  monomod -C services gen-config -w   # Write to services/.monomod.toml`

	MsgFlagWrite      = "Write config to .monomod.toml instead of stdout"
	MsgWritten        = "Wrote %s\n"
	MsgErrExists      = "%s already exists"
	MsgErrWriteConfig = "failed to write config: %w"
)
