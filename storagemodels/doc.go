/*
Package storagemodels defines the data structures shared between the typed
table layer and the store clients.

Key Types:

QuerySpec:
A caller-supplied structured query, passed through to the store:

	spec := &QuerySpec{
	    PartitionKey:     aws.String("league1"),
	    FilterExpression: aws.String("Rating > :min"),
	    ExpressionAttributeValues: map[string]types.AttributeValue{
	        ":min": &types.AttributeValueMemberN{Value: "1500"},
	    },
	    Limit: aws.Int32(25),
	}

StreamResult:
Results from streaming queries with metadata:

	type StreamResult[T any] struct {
	    Item  *T         // The typed entity
	    Raw   Item       // Raw attribute map
	    Error error      // Item-specific error, if any
	    Meta  StreamMeta // Metadata about this item
	}

StreamOptions:
Configuration for streaming behavior:

	opts := []StreamOption{
	    WithBufferSize(100),
	    WithPageSize(25),
	    WithProgressHandler(progressFunc),
	}

These types provide a consistent interface across different store clients.
*/
package storagemodels
