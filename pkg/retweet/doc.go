// Package retweet turns raw retweet data into the (retweeter, author) pairs
// that the ranking graph is built from.
//
// Records are read from line-delimited tweet JSON (a local file, stdin, or
// an S3 object, optionally snappy-compressed) or from a PostgreSQL table.
// Lines that are not retweets or lack either user id are skipped and counted;
// they never reach the graph builder. User ids are the identity of a node.
// Screen names are kept for display only.
package retweet
