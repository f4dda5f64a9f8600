package sys

import "os"

func winSize(*os.File) (row, col int) { return -1, -1 }
