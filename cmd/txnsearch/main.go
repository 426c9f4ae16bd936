// Txnsearch is a command line client for the transaction index.
//
// Usage:
//
//	# Search one account's transactions entered in May, newest first
//	txnsearch search --account 123456789012 --entry-from 2024-05-01 --entry-to 2024-05-31
//
//	# Walk three pages of 50 and print the stored documents
//	txnsearch search --account 123456789012 --value-from 2024-04-01 --value-to 2024-06-30 \
//	    --page-size 50 --pages 3 --raw
//
//	# Load 10000 fake transactions
//	txnsearch seed --count 10000
//
// Engine location and credentials come from ELASTICSEARCH_URL and
// ELASTICSEARCH_API_KEY, read from the environment or a .env file.
package main

func main() {
	Execute()
}
