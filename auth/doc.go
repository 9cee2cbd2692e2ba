// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth guards the privileged endpoints.

# Admin Key

POST /refresh bypasses the snapshot cache and hits the external source, so
it can be locked behind a shared key sent in the X-Admin-Key header:

	if err := auth.CheckRequest(r, cfg.AdminKey); err != nil {
		// 401
	}

When no key is configured the endpoint is open (it is still rate limited).
Keys are compared through their SHA-256 digests with hmac.Equal.
*/
package auth
