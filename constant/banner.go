package constant

// Banner is printed above the root command help.
const Banner = `             _           _
 _ __  _ __ | | __   ___| |_
| '_ \| '__|| |/ /  / __| __|
| | | | |   |   <  | (__| |_
|_| |_|_|   |_|\_\  \___|\__|  cat`
