// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

The same types are used by the server handlers and by the apiclient package,
so the wire format lives in exactly one place. All JSON fields are camelCase.

# Request Types

  - SignupRequest, LoginRequest, EmailRequest, EmailVerifyRequest
  - PasswordResetRequest, PasswordChangeRequest, UpdateUserRequest
  - IdeaCreateRequest, FeedCreateRequest (with PositionRequest)
  - CommentRequest, ApplyRequest, RoadmapCreateRequest

# Response Types

  - AuthResponse: accessToken, tokenType
  - UserResponse, MyTeamResponse, MessageResponse
  - IdeaResponse, AnalysisResponse
  - FeedListItem, FeedDetailResponse (members, positions)
  - CommentResponse, ApplicationResponse, RoadmapResponse
  - ErrorResponse: error, message

# Enumerations

Category, Stage and Gender expose Valid. Category also has Label, which is
what feed search matches against.

ApplicationStatus encodes the team workflow:

	PENDING → APPROVED
	PENDING → REJECTED

Use CanTransitionTo to check a decision before attempting it.
*/
package models
