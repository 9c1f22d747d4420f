// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides caller authentication and identifier utilities.

# Caller Keys

Every request that acts on a session names its caller with an address and
proves it with a caller key. Keys use HMAC-SHA256 over the session ID and the
address:

	key := auth.GenerateCallerKey(sessionID, addr, salt)
	err := auth.ValidateCallerKey(sessionID, addr, key, salt)

The key is URL-safe base64 encoded without padding. Because it is
deterministic, nothing has to be stored to validate it. The administrator's
key is handed out when the session is created and a voter's key when the
voter is registered.

# Addresses

	addr, err := auth.ParseAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")

All-lowercase or all-uppercase hex is accepted as is. Mixed case must be a
valid EIP-55 checksum.

# ID Generation

Random hex IDs for sessions:

	id, err := auth.GenerateID(16)  // 32 hex characters

# IP Hashing

The event journal records who triggered an operation without storing IPs:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
