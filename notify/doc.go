// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package notify delivers verification codes and team notifications.

Mailer sends verification codes. LogMailer is the only implementation and
writes the code to the log.

Notifier announces new team applications. SlackNotifier posts to an incoming
webhook when SLACK_WEBHOOK_URL is set; otherwise FromConfig returns Nop.
Callers treat notification errors as warnings.
*/
package notify
