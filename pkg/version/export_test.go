package version

var ParseRevision = revision
