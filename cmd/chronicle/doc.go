// Chronicle renders the full commit history of a GitHub branch as a single
// document, oldest commit first, with each commit's message and diff.
//
// Usage:
//
//	chronicle owner/repo                     # HTML timeline of main
//	chronicle owner/repo --branch dev        # another branch
//	chronicle owner/repo --format markdown   # markdown instead of HTML
//	chronicle --out - --format json          # repo from the origin remote, JSON on stdout
//	chronicle config init                    # write a default config file
//	chronicle cache show                     # inspect the detail cache
//
// Set GITHUB_TOKEN to raise the API rate limit and to read private
// repositories.
package main
