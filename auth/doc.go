// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing, access tokens and verification codes.

# Passwords

Passwords are hashed with bcrypt:

	hash, err := auth.HashPassword(password, 0) // 0 = bcrypt.DefaultCost
	err = auth.CheckPassword(hash, password)

Accepted lengths are MinPasswordLen to MaxPasswordLen runes and at most 72
bytes, the bcrypt input limit.

# Access Tokens

Access tokens are HS256 JWTs whose subject is the user ID:

	token, err := auth.IssueToken(secret, userID, 24*time.Hour)
	userID, err := auth.ParseToken(secret, token)

Clients send them as "Authorization: Bearer <token>". BearerToken extracts
the token from the header value.

# Verification Codes

Email verification, password reset and password change all use six digit
codes:

	code, err := auth.GenerateVerificationCode()
	hash := auth.HashCode(email, "signup", code, secret)
	err = auth.ValidateCode(email, "signup", submitted, hash, secret)

The HMAC binds the code to the email and purpose and is compared in constant
time.

# ID Generation

Random hex IDs:

	id, err := auth.GenerateID(16)  // 32 hex characters
*/
package auth
