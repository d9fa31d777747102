/*
Package storagemodels defines the data structures shared by the stores and the paging runner.

Key Types:

Row and Value:
A Row maps attribute names to typed scalars. Numbers keep their decimal text:

	row := Row{
	    "driveid": Int(20181120104743),
	    "logtime": Int(1376395),
	    "GPS_Lat": Float(37.3861),
	}
	lat, err := row["GPS_Lat"].Float64()

QuerySpec:
A partition-key query with optional range condition and projection:

	spec := QuerySpec{
	    Collection: "honda-hackathon1",
	    Partition:  KeyCondition{Name: "driveid", Value: Int(20181120104743)},
	    Range:      RangeEquals("logtime", Int(1376395)),
	    Projection: []string{"GPS_Lat", "GPS_Lon", "GPS_Alt"},
	}

Only the ResumeToken changes between pages; WithResumeToken returns the updated copy.

StreamResult:
Rows delivered by a streaming run, with metadata:

	type StreamResult struct {
	    Row   Row
	    Error error
	    Meta  StreamMeta
	}
*/
package storagemodels
