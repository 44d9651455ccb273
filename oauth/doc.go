// Package oauth acquires and renews store access tokens through the
// platform's OAuth2 authorization-code flow.
//
// # Usage
//
// Send the user to an authorization URL, then exchange the code that
// comes back on the redirect:
//
//	client, err := oauth.NewClient(oauth.Config{
//		ClientID:     "app-id",
//		ClientSecret: "app-secret",
//		RedirectURI:  "https://example.com/callback",
//	}, oauth.WithLogger(logger))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	authURL, state, err := client.AuthorizationURL("", "")
//	// redirect the user to authURL and keep state for the callback
//
//	token, err := client.Exchange(ctx, domainPrefix, code)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Later, renew with the refresh token:
//
//	token, err = client.Refresh(ctx, token.DomainPrefix, token.RefreshToken)
//
// # Error Handling
//
// An error status from the token endpoint is an *OAuthError carrying the
// provider's description and the HTTP status. A body that is not JSON
// matches ErrInvalidTokenResponse whatever the status. Failures to reach
// the endpoint at all are a *NetworkError.
package oauth
